// Package middleware holds the fiber middleware of the console server.
package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"corebo/console/internal/auth"
	"corebo/console/internal/response"
)

// AuthMiddleware rejects requests without a live session token and stores
// the user id and token in the request context.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ExtractToken(c)
		if token == "" {
			return response.Unauthorized(c, "login required")
		}

		if !auth.IsLogin(token) {
			return response.Unauthorized(c, "session expired, please sign in again")
		}

		loginId, err := auth.GetLoginId(token)
		if err != nil {
			return response.Unauthorized(c, "failed to resolve user")
		}

		c.Locals("userId", loginId)
		c.Locals("token", token)
		return c.Next()
	}
}

// PermissionMiddleware rejects requests whose user holds none of the
// given permissions. Runs after AuthMiddleware.
func PermissionMiddleware(permissionService *auth.PermissionService, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetCurrentUserID(c)
		if userID == 0 {
			return response.Unauthorized(c, "login required")
		}

		ok, err := permissionService.HasAnyPermission(userID, permissions...)
		if err != nil {
			return response.ServerError(c, "permission check failed")
		}
		if !ok {
			return response.Forbidden(c, "permission denied")
		}
		return c.Next()
	}
}

// RoleMiddleware rejects requests whose user holds none of the given
// roles.
func RoleMiddleware(permissionService *auth.PermissionService, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetCurrentUserID(c)
		if userID == 0 {
			return response.Unauthorized(c, "login required")
		}

		ok, err := permissionService.HasAnyRole(userID, roles...)
		if err != nil {
			return response.ServerError(c, "role check failed")
		}
		if !ok {
			return response.Forbidden(c, "permission denied")
		}
		return c.Next()
	}
}

// ExtractToken pulls the session token from header, bearer auth, query or
// cookie, in that order. Exposed for routes that run without the auth
// middleware, such as logout.
func ExtractToken(c *fiber.Ctx) string {
	token := c.Get("satoken")
	if token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimPrefix(authHeader, "Bearer ")
		}
		return authHeader
	}

	token = c.Query("satoken")
	if token != "" {
		return token
	}

	return c.Cookies("satoken")
}

// GetCurrentUserID returns the signed-in user's id, or zero.
func GetCurrentUserID(c *fiber.Ctx) uint {
	userIdAny := c.Locals("userId")
	if userIdAny == nil {
		return 0
	}
	switch v := userIdAny.(type) {
	case uint:
		return v
	case int:
		return uint(v)
	case int64:
		return uint(v)
	case float64:
		return uint(v)
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0
		}
		return uint(id)
	}
	return 0
}

// GetCurrentToken returns the request's session token, or empty.
func GetCurrentToken(c *fiber.Ctx) string {
	if token, ok := c.Locals("token").(string); ok {
		return token
	}
	return ""
}
