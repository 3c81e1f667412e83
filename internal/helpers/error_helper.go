package helpers

import (
	"github.com/gin-gonic/gin"
)

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, gin.H{
		"status":  "fail",
		"message": customMessage,
	})
}

func RespondWithData(c *gin.Context, statusCode int, data gin.H) {
	c.JSON(statusCode, gin.H{
		"status": "success",
		"data":   data,
	})
}

func RespondWithResults(c *gin.Context, statusCode int, results int, data gin.H) {
	c.JSON(statusCode, gin.H{
		"status":  "success",
		"results": results,
		"data":    data,
	})
}
