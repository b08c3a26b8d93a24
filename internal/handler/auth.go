package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"corebo/console/internal/logic"
	"corebo/console/internal/middleware"
	"corebo/console/internal/response"
	"corebo/console/internal/types"
	"corebo/console/internal/utils"
)

// AuthHandler serves sign-in, sign-out and account endpoints.
type AuthHandler struct {
	userLogic *logic.UserLogic
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(userLogic *logic.UserLogic) *AuthHandler {
	return &AuthHandler{userLogic: userLogic}
}

// Login signs a staff user in and returns the session token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	req.Username = utils.Trim(req.Username)
	if utils.IsEmpty(req.Username) || utils.IsEmpty(req.Password) {
		return response.Error(c, "username and password are required")
	}

	result, err := h.userLogic.Login(&req)
	if err != nil {
		if errors.Is(err, logic.ErrBadCredentials) {
			return response.Error(c, "invalid username or password")
		}
		return response.Error(c, err.Error())
	}

	return response.Success(c, result)
}

// Logout ends the current session. Always succeeds so a stale client can
// clear its state.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := middleware.ExtractToken(c)
	if token != "" {
		_ = h.userLogic.Logout(token)
	}
	return response.Success(c, nil)
}

// GetUserInfo returns the signed-in user's profile.
func (h *AuthHandler) GetUserInfo(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "please sign in")
	}

	user, err := h.userLogic.GetUserInfo(userID)
	if err != nil {
		return response.Error(c, "failed to load user")
	}

	return response.Success(c, user)
}

// ChangePassword updates the signed-in user's password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "please sign in")
	}

	var req types.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	if err := h.userLogic.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		return response.Error(c, err.Error())
	}

	return response.Success(c, nil)
}

// UpdateLocale stores the signed-in user's preferred language.
func (h *AuthHandler) UpdateLocale(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "please sign in")
	}

	var req struct {
		Locale string `json:"locale"`
	}
	if err := c.BodyParser(&req); err != nil || utils.IsEmpty(req.Locale) {
		return response.Error(c, "locale is required")
	}

	if err := h.userLogic.UpdateLocale(userID, req.Locale); err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, nil)
}
