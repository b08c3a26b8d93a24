package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"corebo/console/internal/auth"
	"corebo/console/internal/response"
)

// TokenHandler manages other users' sessions: kick-out and account locks.
type TokenHandler struct{}

// NewTokenHandler creates the token handler.
func NewTokenHandler() *TokenHandler {
	return &TokenHandler{}
}

// Status reports the session state of a user: the active token (sa-token
// keeps one per login/device), whether it is live, and any account lock.
func (h *TokenHandler) Status(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.Error(c, "invalid user id")
	}

	token, _ := auth.GetTokenValue(uint(id))
	return response.Success(c, fiber.Map{
		"token":       token,
		"online":      token != "" && auth.IsLogin(token),
		"disabled":    auth.IsDisable(uint(id)),
		"disableTime": auth.GetDisableTime(uint(id)),
	})
}

// KickOut forces all of a user's sessions offline.
func (h *TokenHandler) KickOut(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.Error(c, "invalid user id")
	}

	if err := auth.KickOut(uint(id)); err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, nil)
}

// Disable locks an account for the given number of seconds.
func (h *TokenHandler) Disable(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.Error(c, "invalid user id")
	}

	var req struct {
		Seconds int64 `json:"seconds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}
	if req.Seconds <= 0 {
		req.Seconds = 86400
	}

	if err := auth.Disable(uint(id), req.Seconds); err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, nil)
}

// Enable lifts an account lock.
func (h *TokenHandler) Enable(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return response.Error(c, "invalid user id")
	}

	if err := auth.Untie(uint(id)); err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, nil)
}
