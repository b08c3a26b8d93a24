package auth

import (
	"gorm.io/gorm"

	"corebo/console/internal/model"
	"corebo/console/internal/utils"
)

// Role codes.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Permission codes checked by route middleware.
const (
	PermDesignRead    = "design:read"
	PermDesignManage  = "design:manage"
	PermPageUse       = "page:use"
	PermSessionManage = "session:manage"
)

// rolePermissions grants permissions per role. "*" grants everything.
var rolePermissions = map[string][]string{
	RoleAdmin:    {"*"},
	RoleOperator: {PermDesignRead, PermPageUse},
}

// PermissionService resolves a user's roles and permissions from the
// account record.
type PermissionService struct {
	db *gorm.DB
}

// NewPermissionService creates a permission service.
func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// GetUserRoles returns the role codes of a user.
func (s *PermissionService) GetUserRoles(userID uint) ([]string, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	if user.Role == "" {
		return nil, nil
	}
	return []string{user.Role}, nil
}

// GetUserPermissions returns the permission codes granted to a user
// through their roles.
func (s *PermissionService) GetUserPermissions(userID uint) ([]string, error) {
	roles, err := s.GetUserRoles(userID)
	if err != nil {
		return nil, err
	}

	var permissions []string
	for _, role := range roles {
		permissions = append(permissions, rolePermissions[role]...)
	}
	return utils.SliceUnique(permissions), nil
}

// HasRole reports whether the user holds the role.
func (s *PermissionService) HasRole(userID uint, roleCode string) (bool, error) {
	roles, err := s.GetUserRoles(userID)
	if err != nil {
		return false, err
	}
	return utils.SliceContains(roles, roleCode), nil
}

// HasPermission reports whether the user holds the permission.
func (s *PermissionService) HasPermission(userID uint, permissionCode string) (bool, error) {
	permissions, err := s.GetUserPermissions(userID)
	if err != nil {
		return false, err
	}
	for _, p := range permissions {
		if p == "*" || p == permissionCode {
			return true, nil
		}
	}
	return false, nil
}

// HasAnyRole reports whether the user holds any of the roles.
func (s *PermissionService) HasAnyRole(userID uint, roleCodes ...string) (bool, error) {
	for _, code := range roleCodes {
		ok, err := s.HasRole(userID, code)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// HasAnyPermission reports whether the user holds any of the permissions.
func (s *PermissionService) HasAnyPermission(userID uint, permissionCodes ...string) (bool, error) {
	for _, code := range permissionCodes {
		ok, err := s.HasPermission(userID, code)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
