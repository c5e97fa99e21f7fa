// Package respond fixes the response shapes shared by every gating site:
// denial placeholders and the mapping from collaborator errors to statuses.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"rally-gateway/internal/upstream"
)

// Denied renders the fixed access-denied placeholder. Gating sites use this
// instead of an empty response so the viewer can tell a restriction is in
// effect.
func Denied(c *gin.Context, reason string) {
	c.JSON(http.StatusForbidden, gin.H{
		"denied": true,
		"reason": reason,
	})
}

// UpstreamError converts a collaborator failure into an inline error body.
// The resource is treated as absent; nothing here is permissive or fatal.
func UpstreamError(c *gin.Context, err error) {
	var se *upstream.StatusError

	switch {
	case errors.Is(err, upstream.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, upstream.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, upstream.ErrForbidden):
		Denied(c, "rejected upstream")
	case errors.As(err, &se):
		c.JSON(http.StatusBadGateway, gin.H{"error": se.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream unavailable"})
	}
}
