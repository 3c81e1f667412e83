package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var EventCategories = []string{
	"Technology", "Business", "Design", "Marketing", "Health",
	"Education", "Sports", "Music", "Arts", "Food",
}

func IsValidCategory(category string) bool {
	for _, c := range EventCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Location struct {
	Address   string  `gorm:"not null" json:"address"`
	City      string  `gorm:"not null" json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Price struct {
	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"not null;default:'LKR'" json:"currency"`
}

type Event struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"not null" json:"description"`
	Date         time.Time `gorm:"not null" json:"date"`
	StartTime    string    `gorm:"not null" json:"starttime"`
	EndTime      string    `gorm:"not null" json:"endtime"`
	Location     Location  `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Price        Price     `gorm:"embedded;embeddedPrefix:price_" json:"price"`
	Category     string    `gorm:"not null" json:"category"`
	Image        string    `gorm:"not null;default:'default-event.jpg'" json:"image"`
	OrganizerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"organizerId"`
	Organizer    *User     `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Participants []User    `gorm:"many2many:event_participants;constraint:OnDelete:CASCADE" json:"participants"`
	Likes        []User    `gorm:"many2many:event_likes;constraint:OnDelete:CASCADE" json:"likes"`
	Featured     bool      `gorm:"not null;default:false" json:"featured"`

	// Derived set sizes, never stored.
	ParticipantCount int `gorm:"-" json:"participantCount"`
	LikeCount        int `gorm:"-" json:"likeCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

func (event *Event) AfterFind(tx *gorm.DB) (err error) {
	event.ParticipantCount = len(event.Participants)
	event.LikeCount = len(event.Likes)
	return
}

// WithOrganizer is the explicit expansion step for event reads. Every read
// path opts in at the call site instead of relying on a model hook.
func WithOrganizer(db *gorm.DB) *gorm.DB {
	return db.Preload("Organizer", PublicUserFields)
}

func WithParticipants(db *gorm.DB) *gorm.DB {
	return db.Preload("Participants", PublicUserFields)
}

func WithLikes(db *gorm.DB) *gorm.DB {
	return db.Preload("Likes", PublicUserFields)
}
