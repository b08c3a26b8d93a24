package model

// User is a staff account able to sign in to the console.
type User struct {
	BaseModel
	Username string `gorm:"size:64;uniqueIndex" json:"username"`
	Password string `gorm:"size:64" json:"-"` // MD5 hex digest
	Nickname string `gorm:"size:64" json:"nickname"`
	Status   int    `gorm:"default:1" json:"status"` // 1 enabled, 0 disabled
	Role     string `gorm:"size:32;default:operator" json:"role"`
	Locale   string `gorm:"size:8;default:en" json:"locale"`
}

// TableName sets the users table name.
func (User) TableName() string {
	return "sys_user"
}

// Enabled reports whether the account may sign in.
func (u *User) Enabled() bool {
	return u.Status == 1
}
