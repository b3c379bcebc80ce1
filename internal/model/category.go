package model

import "time"

// Category groups a user's notes. UserID is set at creation and never changes.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Notes []Note `json:"notes,omitempty" gorm:"foreignKey:CategoryID"`
}
