package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campusware/university-api/internal/middleware"
	"github.com/campusware/university-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// currentAdminID returns the signed-in administrator's ID, or empty when the
// route is unauthenticated.
func currentAdminID(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil {
		return claims.AdminID
	}
	return ""
}
