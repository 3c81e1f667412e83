package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eventahq/eventa-api/internal/helpers"
	"github.com/eventahq/eventa-api/internal/models"
)

const trialDuration = 14 * 24 * time.Hour

func StartTrialSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var existingSubscription models.Subscription
	err := gormDB.
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		First(&existingSubscription).Error
	if err == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "You already have an active subscription.")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error checking subscriptions.")
		return
	}

	now := time.Now()
	subscription := models.Subscription{
		UserID:     userID,
		Type:       models.SubscriptionTypeTrial,
		Status:     models.SubscriptionStatusActive,
		StartDate:  now,
		ExpiryDate: now.Add(trialDuration),
		Price:      0,
		Features: models.SubscriptionFeatures{
			EventsPerMonth:     20,
			OnlinePayment:      true,
			Reports:            true,
			Analytics:          true,
			TicketTemplates:    true,
			PromotionsPerMonth: 2,
		},
	}

	if err := gormDB.Create(&subscription).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to start trial subscription.")
		return
	}

	helpers.RespondWithData(c, http.StatusCreated, gin.H{"subscription": subscription})
}

func GetCurrentSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var subscription models.Subscription
	err := gormDB.
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "No active subscription found.")
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving subscription.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"subscription": subscription})
}

func CancelSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var subscription models.Subscription
	err := gormDB.
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "No active subscription found.")
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving subscription.")
		return
	}

	subscription.Status = models.SubscriptionStatusCancelled
	if err := gormDB.Save(&subscription).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to cancel subscription.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"subscription": subscription})
}
