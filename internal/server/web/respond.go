package web

import "github.com/gin-gonic/gin"

// The API keeps the envelope the site's clients already speak:
// {success, data, message} on success, {success, error, message} on failure.

func respondOK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

func respondError(c *gin.Context, status int, errorText, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   errorText,
		"message": message,
	})
}
