package model

import "time"

// DefaultPhoto is the sentinel filename a note carries until a photo is ingested.
const DefaultPhoto = "default.png"

// Note is a titled piece of text owned by one user, optionally filed under one
// of that user's categories. Photo is either DefaultPhoto or a filename
// produced by the photo store; UserID never changes after creation.
type Note struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	Text       string    `json:"text" gorm:"type:text"`
	Photo      string    `json:"photo" gorm:"size:64;not null;default:'default.png'"`
	CategoryID *uint     `json:"category_id" gorm:"index"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Category *Category `json:"-" gorm:"foreignKey:CategoryID"`
}
