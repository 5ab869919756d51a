package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account
type User struct {
	UserID    string    `gorm:"primaryKey;column:user_id;type:varchar(64)" json:"user_id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	UserName  string    `gorm:"column:user_name;uniqueIndex;size:64;not null" json:"user_name"`
	Password  string    `gorm:"size:128;not null" json:"-"` // bcrypt hash
	Followers int       `gorm:"not null;default:0" json:"followers"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name used by User to `users`
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a uuid when the caller did not pick one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}
