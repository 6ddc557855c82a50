package db

import (
	"time"
)

// Memo is a note owned by exactly one identity-provider user.
// UserID is set at creation and never changes.
type Memo struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:varchar(255);not null;index"`
	Title     string    `json:"title" gorm:"type:varchar(255)"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

// TableName pins the table name regardless of gorm naming strategy
func (Memo) TableName() string {
	return "memos"
}

// NewMemo creates a memo stamped with the current time
func NewMemo(userID, title, content string) *Memo {
	return &Memo{
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
