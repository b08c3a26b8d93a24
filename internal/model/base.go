// Package model defines the persistent entities of the console server.
package model

import (
	"gorm.io/gorm"
	"time"
)

// BaseModel carries the shared primary key and timestamps.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BaseModelWithUser additionally records the acting user.
type BaseModelWithUser struct {
	BaseModel
	CreatedBy uint `json:"createdBy"`
	UpdatedBy uint `json:"updatedBy"`
}
