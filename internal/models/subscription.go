package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionTypeTrial   = "trial"
	SubscriptionTypeMonthly = "monthly"
	SubscriptionTypeYearly  = "yearly"

	SubscriptionStatusActive    = "active"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusCancelled = "cancelled"
)

type SubscriptionFeatures struct {
	EventsPerMonth     int  `gorm:"not null;default:20" json:"eventsPerMonth"`
	OnlinePayment      bool `gorm:"not null;default:true" json:"onlinePayment"`
	Reports            bool `gorm:"not null;default:true" json:"reports"`
	Analytics          bool `gorm:"not null;default:true" json:"analytics"`
	TicketTemplates    bool `gorm:"not null;default:true" json:"ticketTemplates"`
	PromotionsPerMonth int  `gorm:"not null;default:2" json:"promotionsPerMonth"`
}

type Subscription struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"userId"`
	Type       string               `gorm:"not null;default:'trial'" json:"type"`
	Status     string               `gorm:"not null;default:'active'" json:"status"`
	StartDate  time.Time            `gorm:"not null" json:"startDate"`
	ExpiryDate time.Time            `gorm:"not null" json:"expiryDate"`
	Price      float64              `gorm:"not null;default:0" json:"price"`
	Features   SubscriptionFeatures `gorm:"embedded;embeddedPrefix:feature_" json:"features"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

func (subscription *Subscription) BeforeCreate(tx *gorm.DB) (err error) {
	if subscription.ID == uuid.Nil {
		subscription.ID = uuid.New()
	}
	return
}
