package moderation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"rally-gateway/internal/api/respond"
	"rally-gateway/internal/app/http/middleware"
	"rally-gateway/internal/domain/post"
	"rally-gateway/internal/domain/rally"
	"rally-gateway/internal/upstream"
)

// Handler serves the manager panel. Role gating happens in the route group
// (RequireModerator); these handlers only do the work.
type Handler struct {
	api *upstream.Client
}

func NewHandler(api *upstream.Client) *Handler {
	return &Handler{api: api}
}

func (h *Handler) PendingRallies(c *gin.Context) {
	all, err := h.api.ListRallies(c.Request.Context(), middleware.Token(c))
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	pending := make([]rally.Rally, 0)
	for _, r := range all {
		if r.State == rally.StatePending {
			pending = append(pending, r)
		}
	}
	c.JSON(http.StatusOK, gin.H{"rallies": pending})
}

func (h *Handler) PendingPosts(c *gin.Context) {
	pending, err := h.api.ListPendingPosts(c.Request.Context(), middleware.Token(c))
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}
	if pending == nil {
		pending = []post.Post{}
	}
	c.JSON(http.StatusOK, gin.H{"posts": pending})
}

// ApproveRally moves a rally pending -> active. The transition is one-way;
// there is no operation that puts an active rally back.
func (h *Handler) ApproveRally(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rally id"})
		return
	}

	err = h.api.SetRallyState(c.Request.Context(), middleware.Token(c), uint(id), rally.StateActive)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	log.WithFields(log.Fields{
		"rally":     id,
		"moderator": middleware.Viewer(c).ID,
	}).Info("rally activated")
	c.JSON(http.StatusOK, gin.H{"message": "Gallery activated"})
}

func (h *Handler) ApprovePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	err = h.api.SetPostState(c.Request.Context(), middleware.Token(c), uint(id), post.StateApproved)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	log.WithFields(log.Fields{
		"post":      id,
		"moderator": middleware.Viewer(c).ID,
	}).Info("post approved")
	c.JSON(http.StatusOK, gin.H{"message": "Publication approved"})
}
