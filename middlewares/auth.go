package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusevents/utils"
)

// Authenticate verifies the Authorization token and stores the session
// claims in the gin context for downstream handlers.
func Authenticate(c *gin.Context) {
	token := c.Request.Header.Get("Authorization")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return
	}

	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return
	}

	c.Set("userId", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("role", claims.Role)
	c.Set("clubId", claims.ClubID)
	c.Set("isAdmin", claims.IsAdmin)
	c.Next()
}
