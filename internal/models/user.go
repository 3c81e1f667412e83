package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName    string         `gorm:"not null" json:"firstName"`
	LastName     string         `gorm:"not null" json:"lastName"`
	Email        string         `gorm:"unique;not null" json:"email,omitempty"`
	Mobile       string         `gorm:"not null" json:"mobile,omitempty"`
	Password     string         `gorm:"not null" json:"-"`
	Interests    pq.StringArray `gorm:"type:text[]" json:"interests,omitempty"`
	ProfileImage string         `gorm:"not null;default:'default.jpg'" json:"profileImage"`
	Role         string         `gorm:"not null;default:'user'" json:"role,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = strings.ToLower(user.Email)
	return
}

// PublicUserFields restricts a user query to the attributes safe to embed in
// other resources (organizer, participants, review authors).
func PublicUserFields(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "profile_image")
}
