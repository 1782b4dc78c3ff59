package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondWithError aborts the request with a JSON {"error": message} body.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

func RespondWithMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
