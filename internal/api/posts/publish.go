package posts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"rally-gateway/internal/api/respond"
	"rally-gateway/internal/app/http/middleware"
	"rally-gateway/internal/domain/media"
	"rally-gateway/internal/domain/policy"
	"rally-gateway/internal/upstream"
)

// Publish uploads a photo into a rally. Any authenticated user may publish
// into any active rally; the upstream enforces the per-user photo quota and
// creates the publication pending.
func (h *Handler) Publish(c *gin.Context) {
	rid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rally id"})
		return
	}
	viewer := middleware.Viewer(c)
	ctx := c.Request.Context()

	r, err := h.api.GetRally(ctx, uint(rid))
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}
	if !policy.CanPublishToRally(viewer, *r) {
		respond.Denied(c, "log in and pick an active gallery to publish")
		return
	}

	description := c.PostForm("descripcion")
	file, _ := c.FormFile("fotografia")
	if err := media.ValidateUpload(description, file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload"})
		return
	}
	defer src.Close()

	created, err := h.api.CreatePost(ctx, middleware.Token(c), upstream.CreatePostInput{
		RallyID:     uint(rid),
		Description: description,
		Filename:    file.Filename,
		Photo:       src,
	})
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	log.WithFields(log.Fields{"post": created.ID, "rally": rid, "user": viewer.ID}).Info("post published")
	c.JSON(http.StatusCreated, gin.H{"post": created})
}
