package models

import "time"

// TellStatus is the two-state lifecycle of a tell.
type TellStatus int

const (
	TellPending  TellStatus = 0
	TellAnswered TellStatus = 1
)

func (s TellStatus) Valid() bool {
	return s == TellPending || s == TellAnswered
}

// Tell is a message from a sender to a receiver that waits for a reply
type Tell struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SenderID     string     `gorm:"column:sender_id;size:64;not null;index" json:"sender_id"`
	ReceiverID   string     `gorm:"column:receiver_id;size:64;not null;index" json:"receiver_id"`
	Message      string     `gorm:"type:text;not null" json:"message"`
	UserName     string     `gorm:"column:user_name;size:64;not null" json:"user_name"`
	Status       TellStatus `gorm:"not null;default:0;index" json:"status"`
	Reply        *string    `gorm:"type:text" json:"reply"`
	ReactCount   int        `gorm:"column:react_count;not null;default:0" json:"react_count"`
	CommentCount int        `gorm:"column:comment_count;not null;default:0" json:"comment_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName overrides the table name used by GORM
func (Tell) TableName() string {
	return "tells"
}
