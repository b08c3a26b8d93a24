package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"corebo/console/internal/descriptor"
	"corebo/console/internal/dispatch"
	"corebo/console/internal/form"
	"corebo/console/internal/logic"
	"corebo/console/internal/middleware"
	"corebo/console/internal/response"
	"corebo/console/internal/svc"
	"corebo/console/internal/table"
	"corebo/console/internal/types"
	"corebo/console/internal/utils"
	"corebo/console/internal/workflow"
)

// PageHandler opens form sessions and runs transactions against them.
type PageHandler struct {
	designLogic *logic.DesignLogic
	userLogic   *logic.UserLogic
}

// NewPageHandler creates the page handler.
func NewPageHandler(designLogic *logic.DesignLogic, userLogic *logic.UserLogic) *PageHandler {
	return &PageHandler{designLogic: designLogic, userLogic: userLogic}
}

// OpenPageRequest opens a session for a published form design.
type OpenPageRequest struct {
	Key            string         `json:"key"`
	Initial        map[string]any `json:"initial,omitempty"`
	Locale         string         `json:"locale,omitempty"`
	HiddenControls []string       `json:"hiddenControls,omitempty"`
}

// Open parses the published design and creates a form session seeded with
// defaults plus any initial values.
func (h *PageHandler) Open(c *fiber.Ctx) error {
	var req OpenPageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}
	if utils.IsEmpty(req.Key) {
		return response.Error(c, "key is required")
	}

	body, err := h.designLogic.GetPublishedBody(c.Context(), req.Key)
	if err != nil {
		if errors.Is(err, logic.ErrDesignNotFound) {
			return response.NotFound(c, "form design not found")
		}
		return response.Error(c, err.Error())
	}

	desc, err := descriptor.Parse([]byte(body))
	if err != nil {
		return response.ErrorWithCode(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	locale := h.resolveLocale(c, req.Locale)
	session := form.NewSession(desc, locale, svc.Ctx.Dict, req.Initial)
	if len(req.HiddenControls) > 0 {
		session.SetRoleTask(form.NewRoleTask(req.HiddenControls...))
	}
	svc.Ctx.Sessions.Put(session)

	return response.Success(c, fiber.Map{
		"sessionId": session.ID,
		"page":      session.Render(),
	})
}

// Render re-renders an open session with its current values.
func (h *PageHandler) Render(c *fiber.Ctx) error {
	session, ok := svc.Ctx.Sessions.Get(c.Params("id"))
	if !ok {
		return response.NotFound(c, "session not found")
	}
	return response.Success(c, session.Render())
}

// SetValues merges field values into an open session.
func (h *PageHandler) SetValues(c *fiber.Ctx) error {
	var req struct {
		SessionID string         `json:"sessionId"`
		Values    map[string]any `json:"values"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	session, ok := svc.Ctx.Sessions.Get(req.SessionID)
	if !ok {
		return response.NotFound(c, "session not found")
	}
	session.SetValues(req.Values)
	return response.Success(c, nil)
}

// Close discards an open session and its table UI state.
func (h *PageHandler) Close(c *fiber.Ctx) error {
	id := c.Params("id")
	svc.Ctx.Sessions.Delete(id)
	table.DefaultSearchStore.ResetSession(id)
	return response.Success(c, nil)
}

// Transact runs one txcode-bound transaction for an open session.
// Validation failures come back as field errors without touching the
// workflow service; export results stream back as a file download.
func (h *PageHandler) Transact(c *fiber.Ctx) error {
	var req types.TransactRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}
	return h.runTransact(c, req)
}

// Export streams the selected-or-all rows of a table as a CSV download.
func (h *PageHandler) Export(c *fiber.Ctx) error {
	var req types.TransactRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}
	req.TxCode = dispatch.TxCodeExport
	return h.runTransact(c, req)
}

func (h *PageHandler) runTransact(c *fiber.Ctx, req types.TransactRequest) error {
	session, ok := svc.Ctx.Sessions.Get(req.SessionID)
	if !ok {
		return response.NotFound(c, "session not found")
	}

	if len(req.Values) > 0 {
		session.SetValues(req.Values)
	}
	if req.TableCode != "" && req.SelectedRows != nil {
		if sel := session.Selection(req.TableCode); sel != nil {
			sel.Clear()
			for _, row := range req.SelectedRows {
				sel.Select(row)
			}
		}
	}

	opts := form.SubmitOptions{
		SessionToken: middleware.GetCurrentToken(c),
		TxFo:         req.TxFo,
		TableCode:    req.TableCode,
		AllRows:      req.AllRows,
		Columns:      tableColumns(session, req.TableCode),
		SearchText:   req.SearchText,
		Parameters:   req.Parameters,
		PageIndex:    req.PageIndex,
		PageSize:     req.PageSize,
		Unranged:     req.Unranged,
	}

	result, err := session.Submit(c.Context(), svc.Ctx.Dispatcher, req.TxCode, opts)
	if err != nil {
		return h.transactError(c, err)
	}

	if file, isFile := result.Payload.(*dispatch.ExportFile); isFile {
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
		return c.Send(file.Content)
	}
	return response.Success(c, result)
}

// Search runs a paginated search directly, outside the form submit gate.
func (h *PageHandler) Search(c *fiber.Ctx) error {
	var req types.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	session, ok := svc.Ctx.Sessions.Get(req.SessionID)
	if !ok {
		return response.NotFound(c, "session not found")
	}

	opts := form.SubmitOptions{
		SessionToken: middleware.GetCurrentToken(c),
		TableCode:    req.TableCode,
		TxFo:         searchTxFo(session, req.TableCode),
		SearchText:   req.SearchText,
		Parameters:   req.Parameters,
		PageIndex:    req.PageIndex,
		PageSize:     req.PageSize,
		Unranged:     req.Unranged,
	}

	result, err := session.Submit(c.Context(), svc.Ctx.Dispatcher, dispatch.TxCodeSearch, opts)
	if err != nil {
		return h.transactError(c, err)
	}
	return response.Success(c, result)
}

// AdvancedSearch toggles the advanced-search panel flag for a table.
func (h *PageHandler) AdvancedSearch(c *fiber.Ctx) error {
	var req types.AdvancedSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	if _, ok := svc.Ctx.Sessions.Get(req.SessionID); !ok {
		return response.NotFound(c, "session not found")
	}
	table.DefaultSearchStore.SetExpanded(req.SessionID+":"+req.TableCode, req.Expanded)
	return response.Success(c, fiber.Map{"expanded": req.Expanded})
}

// resolveLocale picks the display language: explicit request value first,
// then the signed-in user's preference, then the configured default.
func (h *PageHandler) resolveLocale(c *fiber.Ctx, requested string) string {
	if requested != "" {
		return requested
	}
	if userID := middleware.GetCurrentUserID(c); userID != 0 {
		if user, err := h.userLogic.GetUserInfo(userID); err == nil && user.Locale != "" {
			return user.Locale
		}
	}
	return svc.Ctx.Config.Dictionary.DefaultLocale
}

// transactError maps dispatch and validation errors onto HTTP responses.
func (h *PageHandler) transactError(c *fiber.Ctx, err error) error {
	var vf *form.ValidationFailure
	switch {
	case errors.As(err, &vf):
		fieldErrs := make([]types.TransactError, 0, len(vf.Fields))
		for _, fe := range vf.Fields {
			fieldErrs = append(fieldErrs, types.TransactError{Code: fe.Code, Message: fe.Message})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(response.Response{
			Code:    fiber.StatusUnprocessableEntity,
			Message: vf.Error(),
			Data:    fieldErrs,
		})
	case errors.Is(err, workflow.ErrSessionExpired):
		return response.Unauthorized(c, "session expired, please sign in again")
	case errors.Is(err, dispatch.ErrBusy), errors.Is(err, form.ErrSubmitting):
		return response.ErrorWithCode(c, fiber.StatusConflict, "a transaction is already in flight")
	case errors.Is(err, dispatch.ErrUnknownTxCode):
		return response.Error(c, err.Error())
	default:
		var appErr *workflow.AppError
		if errors.As(err, &appErr) {
			first := appErr.First()
			return c.Status(fiber.StatusBadGateway).JSON(response.Response{
				Code:    fiber.StatusBadGateway,
				Message: first.Info,
				Data:    appErr.Errs,
			})
		}
		return response.ServerError(c, err.Error())
	}
}

// tableColumns finds the column definitions of a table input for export.
func tableColumns(s *form.Session, tableCode string) []descriptor.Column {
	if tableCode == "" {
		return nil
	}
	var cols []descriptor.Column
	form.WalkInputs(s.Descriptor, func(in *descriptor.Input) {
		if in.Code != tableCode {
			return
		}
		if cfg, ok := in.Config.(descriptor.TableConfig); ok {
			cols = cfg.Columns
		}
	})
	return cols
}

// searchTxFo derives the search lookup from the table input's command.
func searchTxFo(s *form.Session, tableCode string) *workflow.TxFo {
	if tableCode == "" {
		return nil
	}
	var fo *workflow.TxFo
	form.WalkInputs(s.Descriptor, func(in *descriptor.Input) {
		if in.Code != tableCode {
			return
		}
		if cfg, ok := in.Config.(descriptor.TableConfig); ok && cfg.Command != "" {
			fo = &workflow.TxFo{
				WorkflowID: s.Descriptor.WorkflowID,
				Pathname:   cfg.Command,
			}
		}
	})
	return fo
}
