package logic

import (
	"errors"

	"gorm.io/gorm"

	"corebo/console/internal/auth"
	"corebo/console/internal/model"
	"corebo/console/internal/types"
	"corebo/console/internal/utils"
)

var ErrBadCredentials = errors.New("invalid username or password")

// UserLogic handles staff accounts and sign-in.
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic creates the user logic.
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// Login verifies credentials and issues a session token.
func (l *UserLogic) Login(req *types.LoginRequest) (*types.LoginResponse, error) {
	var user model.User
	if err := l.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if utils.MD5(req.Password) != user.Password {
		return nil, ErrBadCredentials
	}

	if !user.Enabled() {
		return nil, errors.New("account is disabled")
	}

	if auth.IsDisable(user.ID) {
		return nil, errors.New("account is locked")
	}

	token, err := auth.Login(user.ID)
	if err != nil {
		return nil, errors.New("login failed")
	}

	return &types.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Nickname: user.Nickname,
		Locale:   user.Locale,
	}, nil
}

// Logout ends the session bound to the given token.
func (l *UserLogic) Logout(token string) error {
	return auth.LogoutByToken(token)
}

// GetUserInfo loads a staff account by id.
func (l *UserLogic) GetUserInfo(id uint) (*model.User, error) {
	var user model.User
	if err := l.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword verifies the old password before setting the new one.
func (l *UserLogic) ChangePassword(id uint, oldPassword, newPassword string) error {
	var user model.User
	if err := l.db.First(&user, id).Error; err != nil {
		return err
	}

	if utils.MD5(oldPassword) != user.Password {
		return errors.New("old password does not match")
	}

	if len(newPassword) < 6 || len(newPassword) > 64 {
		return errors.New("password length must be 6-64 characters")
	}

	return l.db.Model(&user).Update("password", utils.MD5(newPassword)).Error
}

// UpdateLocale stores the user's preferred display language.
func (l *UserLogic) UpdateLocale(id uint, locale string) error {
	return l.db.Model(&model.User{}).Where("id = ?", id).Update("locale", locale).Error
}
