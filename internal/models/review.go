package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReviewTypePositive = "positive"
	ReviewTypeNegative = "negative"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Content    string    `gorm:"not null" json:"content"`
	Rating     int       `gorm:"not null" json:"rating"`
	Confidence float64   `gorm:"not null;default:0.5" json:"confidence"`
	Type       string    `gorm:"not null" json:"type"`
	EventID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_event_user" json:"eventId"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_event_user" json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (review *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	return
}

func WithAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("User", PublicUserFields)
}
