package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eventahq/eventa-api/internal/helpers"
	"github.com/eventahq/eventa-api/internal/models"
)

func ListEventReviews(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	if _, found := findEvent(c, gormDB, eventID); !found {
		return
	}

	reviewQuery := gormDB.Model(&models.Review{}).
		Scopes(models.WithAuthor).
		Where("event_id = ?", eventID)

	// Anything outside the two-value enum is ignored rather than rejected.
	reviewType := c.Query("type")
	if reviewType == models.ReviewTypePositive || reviewType == models.ReviewTypeNegative {
		reviewQuery = reviewQuery.Where("type = ?", reviewType)
	}

	var reviews []models.Review
	if err := reviewQuery.Order("created_at DESC").Find(&reviews).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving reviews.")
		return
	}

	helpers.RespondWithResults(c, http.StatusOK, len(reviews), gin.H{"reviews": reviews})
}

type CreateReviewRequest struct {
	Content    string   `json:"content" binding:"required"`
	Rating     int      `json:"rating" binding:"required,min=1,max=5"`
	Confidence *float64 `json:"confidence" binding:"omitempty,min=0,max=1"`
	Type       string   `json:"type" binding:"required,oneof=positive negative"`
}

func CreateReview(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	if _, found := findEvent(c, gormDB, eventID); !found {
		return
	}

	var existingReview models.Review
	err := gormDB.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existingReview).Error
	if err == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "You have already reviewed this event.")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error checking existing reviews.")
		return
	}

	// Event and user come from the route and token, never from the body.
	review := models.Review{
		Content:    req.Content,
		Rating:     req.Rating,
		Confidence: 0.5,
		Type:       req.Type,
		EventID:    eventID,
		UserID:     userID,
	}
	if req.Confidence != nil {
		review.Confidence = *req.Confidence
	}

	if err := gormDB.Create(&review).Error; err != nil {
		if isDuplicateKey(err) {
			helpers.RespondWithError(c, http.StatusBadRequest, "You have already reviewed this event.")
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to create review.")
		return
	}

	helpers.RespondWithData(c, http.StatusCreated, gin.H{"review": review})
}

type UpdateReviewRequest struct {
	Content    *string  `json:"content"`
	Rating     *int     `json:"rating" binding:"omitempty,min=1,max=5"`
	Confidence *float64 `json:"confidence" binding:"omitempty,min=0,max=1"`
	Type       *string  `json:"type" binding:"omitempty,oneof=positive negative"`
}

func UpdateReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "reviewId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var review models.Review
	if err := gormDB.Where("id = ?", reviewID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "No review found with that ID.")
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving review.")
		return
	}

	if !helpers.IsAuthor(userID, review.UserID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You can only update your own reviews.")
		return
	}

	if req.Content != nil {
		review.Content = *req.Content
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Confidence != nil {
		review.Confidence = *req.Confidence
	}
	if req.Type != nil {
		review.Type = *req.Type
	}

	if err := gormDB.Save(&review).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to update review.")
		return
	}

	var updatedReview models.Review
	if err := gormDB.Scopes(models.WithAuthor).Where("id = ?", review.ID).First(&updatedReview).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving review.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"review": updatedReview})
}

func DeleteReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "reviewId")
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

	var review models.Review
	if err := gormDB.Where("id = ?", reviewID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "No review found with that ID.")
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Error retrieving review.")
		return
	}

	if !helpers.IsAuthor(userID, review.UserID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You can only delete your own reviews.")
		return
	}

	if err := gormDB.Delete(&review).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to delete review.")
		return
	}

	c.Status(http.StatusNoContent)
}
