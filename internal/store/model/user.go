package model

import "time"

// User is owned by the authentication subsystem; this service only reads it.
type User struct {
	ID          int64  `gorm:"primaryKey"`
	Email       string `gorm:"uniqueIndex;not null"`
	IsActive    bool   `gorm:"default:true"`
	IsSuperuser bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type UserList []User
