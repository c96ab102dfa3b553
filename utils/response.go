package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONErrorCode adds a machine-readable code so the frontend can tell
// "room just filled up" apart from "someone else changed this, retry".
func JSONErrorCode(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{"success": false, "code": errCode, "error": message})
}
