// Package dispatch maps server-delivered transaction codes to typed
// operations against the workflow service. The txcode set is an external
// string protocol; this package is the boundary adapter that parses it
// into a closed command union so no internal logic switches on raw strings.
package dispatch

// Wire txcode values delivered inside form descriptors.
const (
	TxCodeUpdate = "#sys:fo-post-updatedata"
	TxCodeDelete = "#sys:fo-post-deletedata"
	TxCodeSearch = "fo-search-API"
	TxCodeCreate = "#sys:fo-submit-dataAPI"
	TxCodeView   = "#sys:view-data"
	TxCodeExport = "#sys:fo-export-data"
)

// Kind is the parsed operation of a txcode.
type Kind int

const (
	KindUnknown Kind = iota
	KindSearch
	KindCreate
	KindUpdate
	KindDelete
	KindView
	KindExport
)

// String returns the operation name.
func (k Kind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindCreate:
		return "create"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	case KindView:
		return "view"
	case KindExport:
		return "export"
	default:
		return "unknown"
	}
}

// Command is a parsed txcode. Unknown codes keep their raw value so they
// remain a typed, reportable case instead of a silent fallthrough.
type Command struct {
	Kind Kind
	Raw  string
}

// ParseTxCode parses a descriptor txcode into a command.
func ParseTxCode(txcode string) Command {
	switch txcode {
	case TxCodeUpdate:
		return Command{Kind: KindUpdate, Raw: txcode}
	case TxCodeDelete:
		return Command{Kind: KindDelete, Raw: txcode}
	case TxCodeSearch:
		return Command{Kind: KindSearch, Raw: txcode}
	case TxCodeCreate:
		return Command{Kind: KindCreate, Raw: txcode}
	case TxCodeView:
		return Command{Kind: KindView, Raw: txcode}
	case TxCodeExport:
		return Command{Kind: KindExport, Raw: txcode}
	default:
		return Command{Kind: KindUnknown, Raw: txcode}
	}
}
