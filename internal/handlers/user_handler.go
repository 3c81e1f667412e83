package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventahq/eventa-api/internal/helpers"
	"github.com/eventahq/eventa-api/internal/models"
)

func ListUsers(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var users []models.User
	if err := gormDB.Find(&users).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving users.")
		return
	}

	helpers.RespondWithResults(c, http.StatusOK, len(users), gin.H{"users": users})
}

func GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var user models.User
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "No user found with that ID.")
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving user.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"user": user})
}

func joinedEventsQuery(gormDB *gorm.DB, userID uuid.UUID, past bool) *gorm.DB {
	eventQuery := eventReadQuery(gormDB).
		Joins("JOIN event_participants ON event_participants.event_id = events.id").
		Where("event_participants.user_id = ?", userID)
	if past {
		return eventQuery.Where("events.date < ?", time.Now()).Order("events.date DESC")
	}
	return eventQuery.Where("events.date >= ?", time.Now()).Order("events.date ASC")
}

func organizedEventsQuery(gormDB *gorm.DB, userID uuid.UUID) *gorm.DB {
	return eventReadQuery(gormDB).
		Where("organizer_id = ?", userID).
		Order("events.date DESC")
}

func likedEventsQuery(gormDB *gorm.DB, userID uuid.UUID) *gorm.DB {
	return eventReadQuery(gormDB).
		Joins("JOIN event_likes ON event_likes.event_id = events.id").
		Where("event_likes.user_id = ?", userID).
		Order("events.date DESC")
}

func respondWithEvents(c *gin.Context, eventQuery *gorm.DB) {
	var events []models.Event
	if err := eventQuery.Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving events.")
		return
	}
	helpers.RespondWithResults(c, http.StatusOK, len(events), gin.H{"events": events})
}

func UserEvents(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	respondWithEvents(c, joinedEventsQuery(gormDB, userID, false))
}

func UserPastEvents(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	respondWithEvents(c, joinedEventsQuery(gormDB, userID, true))
}

func UserOrganizedEvents(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	respondWithEvents(c, organizedEventsQuery(gormDB, userID))
}

func MyEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	respondWithEvents(c, joinedEventsQuery(gormDB, userID, false))
}

func MyPastEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	respondWithEvents(c, joinedEventsQuery(gormDB, userID, true))
}

func MyOrganizedEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	respondWithEvents(c, organizedEventsQuery(gormDB, userID))
}

func MyLikedEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	respondWithEvents(c, likedEventsQuery(gormDB, userID))
}
