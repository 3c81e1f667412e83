package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eventahq/eventa-api/internal/helpers"
	"github.com/eventahq/eventa-api/internal/models"
)

const bcryptCost = 12

type RegisterRequest struct {
	FirstName string   `json:"firstName" binding:"required"`
	LastName  string   `json:"lastName" binding:"required"`
	Email     string   `json:"email" binding:"required,email"`
	Mobile    string   `json:"mobile" binding:"required"`
	Password  string   `json:"password" binding:"required,min=6"`
	Interests []string `json:"interests"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func validInterests(interests []string) bool {
	for _, interest := range interests {
		if !models.IsValidCategory(interest) {
			return false
		}
	}
	return true
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if !validInterests(req.Interests) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Interests must be valid event categories.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	email := strings.ToLower(req.Email)

	var existingUser models.User
	if result := gormDB.Where("email = ?", email).First(&existingUser); result.Error == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "A user with this email already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Mobile:    req.Mobile,
		Password:  string(hashedPassword),
		Interests: pq.StringArray(req.Interests),
		Role:      models.RoleUser,
	}

	if err := gormDB.Create(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to create user.")
		return
	}

	helpers.RespondWithData(c, http.StatusCreated, gin.H{"user": user})
}

// Login takes the signing secret at registration time so tokens are always
// issued with the same secret the auth middleware verifies against.
func Login(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}

		gormDB, ok := getDB(c)
		if !ok {
			return
		}

		var user models.User
		if err := gormDB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		}

		if secret == "" {
			helpers.RespondWithError(c, http.StatusInternalServerError, "JWT secret not configured.")
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.ID.String(),
			"role":    user.Role,
			"exp":     time.Now().Add(24 * time.Hour).Unix(),
		})

		tokenString, err := token.SignedString([]byte(secret))
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
			return
		}

		helpers.RespondWithData(c, http.StatusOK, gin.H{
			"token": tokenString,
			"user": gin.H{
				"id":        user.ID,
				"firstName": user.FirstName,
				"lastName":  user.LastName,
				"email":     user.Email,
				"role":      user.Role,
			},
		})
	}
}

func GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var user models.User
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "No user found with that ID.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"user": user})
}

type UpdateMeRequest struct {
	FirstName    *string   `json:"firstName"`
	LastName     *string   `json:"lastName"`
	Mobile       *string   `json:"mobile"`
	Interests    *[]string `json:"interests"`
	ProfileImage *string   `json:"profileImage"`
}

func UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.Interests != nil && !validInterests(*req.Interests) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Interests must be valid event categories.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var user models.User
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "No user found with that ID.")
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Mobile != nil {
		user.Mobile = *req.Mobile
	}
	if req.Interests != nil {
		user.Interests = pq.StringArray(*req.Interests)
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	if err := gormDB.Save(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to update profile.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"user": user})
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func UpdatePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
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

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Current password is incorrect.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	user.Password = string(hashedPassword)
	if err := gormDB.Save(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to update password.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"message": "Password updated successfully."})
}
