package model

import (
	"time"
)

type User struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Email           string    `gorm:"type:varchar(255);not null;default:'';index:idx_email" json:"email"`
	TokenIdentifier string    `gorm:"type:varchar(255);not null;index:idx_token" json:"-"`
	ExternalID      string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_external_id" json:"external_id"`
	ImageURL        *string   `gorm:"type:varchar(512)" json:"image_url"`
	Username        *string   `gorm:"type:varchar(20);uniqueIndex:idx_username" json:"username"`
	CreatedAt       time.Time `json:"created_at"`
	LastActiveAt    time.Time `json:"last_active_at"`
}

func (User) TableName() string {
	return "users"
}
