package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rally-gateway/internal/domain/policy"
)

// RequireModerator gates the moderation and administration surfaces. Denial
// is an explicit body, never an empty page, so the caller can render the
// access-denied view.
func RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !policy.CanModerate(Viewer(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"denied": true,
				"reason": "moderator role required",
			})
			return
		}
		c.Next()
	}
}
