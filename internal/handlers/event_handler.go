package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/eventahq/eventa-api/internal/helpers"
	"github.com/eventahq/eventa-api/internal/middleware"
	"github.com/eventahq/eventa-api/internal/models"
	"github.com/eventahq/eventa-api/internal/query"
)

const (
	featuredCacheKey = "events:featured"
	featuredCacheTTL = time.Minute
	featuredLimit    = 5
)

var eventSchema = query.Schema{
	"title":       {Column: "title"},
	"description": {Column: "description"},
	"category":    {Column: "category"},
	"featured":    {Column: "featured", Kind: query.Boolean},
	"date":        {Column: "date", Kind: query.Timestamp},
	"starttime":   {Column: "start_time"},
	"endtime":     {Column: "end_time"},
	"price":       {Column: "price_amount", Kind: query.Number},
	"currency":    {Column: "price_currency"},
	"address":     {Column: "location_address"},
	"city":        {Column: "location_city"},
	"image":       {Column: "image"},
	"createdAt":   {Column: "created_at", Kind: query.Timestamp},
}

func eventReadQuery(gormDB *gorm.DB) *gorm.DB {
	return gormDB.Model(&models.Event{}).
		Scopes(models.WithOrganizer, models.WithParticipants, models.WithLikes)
}

func findEvent(c *gin.Context, gormDB *gorm.DB, eventID uuid.UUID) (*models.Event, bool) {
	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "No event found with that ID.")
			return nil, false
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving event.")
		return nil, false
	}
	return &event, true
}

func respondWithEvent(c *gin.Context, gormDB *gorm.DB, eventID uuid.UUID, statusCode int) {
	var event models.Event
	if err := eventReadQuery(gormDB).Where("id = ?", eventID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving event.")
		return
	}
	helpers.RespondWithData(c, statusCode, gin.H{"event": event})
}

func ListEvents(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	opts := query.Parse(c.Request.URL.Query(), eventSchema)

	var events []models.Event
	err := opts.Apply(eventReadQuery(gormDB)).Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving events.")
		return
	}

	helpers.RespondWithResults(c, http.StatusOK, len(events), gin.H{"events": events})
}

func ListFeaturedEvents(c *gin.Context) {
	responseCache := middleware.GetCache(c)
	if body, found := responseCache.Get(c.Request.Context(), featuredCacheKey); found {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var events []models.Event
	err := eventReadQuery(gormDB).
		Where("featured = ?", true).
		Limit(featuredLimit).
		Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving featured events.")
		return
	}

	envelope := gin.H{
		"status":  "success",
		"results": len(events),
		"data":    gin.H{"events": events},
	}
	if body, err := json.Marshal(envelope); err == nil {
		responseCache.Set(c.Request.Context(), featuredCacheKey, body, featuredCacheTTL)
	}

	c.JSON(http.StatusOK, envelope)
}

// likeEscaper neutralizes ILIKE metacharacters so search terms only ever
// match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func SearchEvents(c *gin.Context) {
	searchQuery := strings.TrimSpace(c.Query("query"))
	if searchQuery == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Search query is required.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	pattern := "%" + likeEscaper.Replace(searchQuery) + "%"
	var events []models.Event
	err := eventReadQuery(gormDB).
		Where(
			"title ILIKE ? OR description ILIKE ? OR location_address ILIKE ? OR location_city ILIKE ? OR category ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		).
		Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error searching events.")
		return
	}

	helpers.RespondWithResults(c, http.StatusOK, len(events), gin.H{"events": events})
}

func GetEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var event models.Event
	if err := eventReadQuery(gormDB).Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "No event found with that ID.")
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving event.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"event": event})
}

type LocationRequest struct {
	Address   string  `json:"address" binding:"required"`
	City      string  `json:"city" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PriceRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type CreateEventRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	StartTime   string          `json:"starttime" binding:"required"`
	EndTime     string          `json:"endtime" binding:"required"`
	Location    LocationRequest `json:"location" binding:"required"`
	Price       PriceRequest    `json:"price"`
	Category    string          `json:"category" binding:"required"`
	Image       string          `json:"image"`
	Featured    bool            `json:"featured"`
}

func CreateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if !models.IsValidCategory(req.Category) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event category.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location: models.Location{
			Address:   req.Location.Address,
			City:      req.Location.City,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		Price: models.Price{
			Amount:   req.Price.Amount,
			Currency: req.Price.Currency,
		},
		Category:    req.Category,
		Image:       req.Image,
		OrganizerID: userID,
		Featured:    req.Featured,
	}
	if event.Price.Currency == "" {
		event.Price.Currency = "LKR"
	}
	if event.Image == "" {
		event.Image = "default-event.jpg"
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to create event.")
		return
	}

	respondWithEvent(c, gormDB, event.ID, http.StatusCreated)
}

type UpdateEventRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Date        *time.Time       `json:"date"`
	StartTime   *string          `json:"starttime"`
	EndTime     *string          `json:"endtime"`
	Location    *LocationRequest `json:"location"`
	Price       *PriceRequest    `json:"price"`
	Category    *string          `json:"category"`
	Image       *string          `json:"image"`
	Featured    *bool            `json:"featured"`
}

func UpdateEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.Category != nil && !models.IsValidCategory(*req.Category) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event category.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	event, found := findEvent(c, gormDB, eventID)
	if !found {
		return
	}

	if !helpers.CanModify(userID, currentRole(c), event.OrganizerID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You do not have permission to update this event.")
		return
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.Location != nil {
		event.Location = models.Location{
			Address:   req.Location.Address,
			City:      req.Location.City,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}
	if req.Price != nil {
		event.Price.Amount = req.Price.Amount
		if req.Price.Currency != "" {
			event.Price.Currency = req.Price.Currency
		}
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Image != nil {
		event.Image = *req.Image
	}
	if req.Featured != nil {
		event.Featured = *req.Featured
	}

	if err := gormDB.Save(event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to update event.")
		return
	}

	respondWithEvent(c, gormDB, event.ID, http.StatusOK)
}

func DeleteEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	event, found := findEvent(c, gormDB, eventID)
	if !found {
		return
	}

	if !helpers.CanModify(userID, currentRole(c), event.OrganizerID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You do not have permission to delete this event.")
		return
	}

	if err := gormDB.Delete(event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to delete event.")
		return
	}

	c.Status(http.StatusNoContent)
}

func isParticipant(gormDB *gorm.DB, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := gormDB.Table("event_participants").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func hasLiked(gormDB *gorm.DB, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := gormDB.Table("event_likes").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

// isDuplicateKey reports whether err is a unique-constraint violation
// (SQLSTATE 23505) raised by the composite keys on the join tables and
// the reviews index.
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func JoinEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	event, found := findEvent(c, gormDB, eventID)
	if !found {
		return
	}

	joined, err := isParticipant(gormDB, event.ID, userID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error checking participation.")
		return
	}
	if joined {
		helpers.RespondWithError(c, http.StatusBadRequest, "You are already a participant in this event.")
		return
	}

	err = gormDB.Model(event).Association("Participants").Append(&models.User{ID: userID})
	if err != nil {
		if isDuplicateKey(err) {
			helpers.RespondWithError(c, http.StatusBadRequest, "You are already a participant in this event.")
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to join event.")
		return
	}

	respondWithEvent(c, gormDB, event.ID, http.StatusOK)
}

func LeaveEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	event, found := findEvent(c, gormDB, eventID)
	if !found {
		return
	}

	joined, err := isParticipant(gormDB, event.ID, userID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error checking participation.")
		return
	}
	if !joined {
		helpers.RespondWithError(c, http.StatusBadRequest, "You are not a participant in this event.")
		return
	}

	err = gormDB.Model(event).Association("Participants").Delete(&models.User{ID: userID})
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to leave event.")
		return
	}

	respondWithEvent(c, gormDB, event.ID, http.StatusOK)
}

// LikeEvent is a pure toggle: present removes, absent adds, and it never
// reports an illegal transition, unlike join/leave.
func LikeEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	event, found := findEvent(c, gormDB, eventID)
	if !found {
		return
	}

	liked, err := hasLiked(gormDB, event.ID, userID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error checking likes.")
		return
	}

	if liked {
		err = gormDB.Model(event).Association("Likes").Delete(&models.User{ID: userID})
	} else {
		err = gormDB.Model(event).Association("Likes").Append(&models.User{ID: userID})
		if isDuplicateKey(err) {
			err = nil
		}
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to update likes.")
		return
	}

	respondWithEvent(c, gormDB, event.ID, http.StatusOK)
}
