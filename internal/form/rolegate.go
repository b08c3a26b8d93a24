package form

// RoleTask is the per-user visibility overlay applied at render time.
// The same descriptor renders differently per role; the descriptor itself
// is never mutated.
type RoleTask struct {
	hidden map[string]bool
}

// NewRoleTask creates an overlay hiding the given input codes.
func NewRoleTask(hiddenCodes ...string) *RoleTask {
	hidden := make(map[string]bool, len(hiddenCodes))
	for _, code := range hiddenCodes {
		hidden[code] = true
	}
	return &RoleTask{hidden: hidden}
}

// RoleTaskFromPermissions builds an overlay from a map of input code to
// required permission, hiding every input whose permission the check
// rejects.
func RoleTaskFromPermissions(required map[string]string, has func(permission string) bool) *RoleTask {
	hidden := make(map[string]bool)
	for code, perm := range required {
		if !has(perm) {
			hidden[code] = true
		}
	}
	return &RoleTask{hidden: hidden}
}

// IsHidden reports whether the input code is hidden for this role.
// A nil overlay hides nothing.
func (r *RoleTask) IsHidden(code string) bool {
	if r == nil {
		return false
	}
	return r.hidden[code]
}
