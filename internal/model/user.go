package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// User mirrors the identity collaborator's account record; only the fields
// the leaderboard and access checks need are kept here.
// swagger:model User
type User struct {
	UUIDBase
	Name     string    `gorm:"size:100;not null;index" json:"name"`
	Email    string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Role     UserRole  `gorm:"size:20;default:'student'" json:"role"`
	Disabled bool      `gorm:"default:false" json:"disabled"`
	LastSeen time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
