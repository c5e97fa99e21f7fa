package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"rally-gateway/internal/api/respond"
	"rally-gateway/internal/app/http/middleware"
	"rally-gateway/internal/upstream"
)

// Handler serves the user administration table. The shipped interface lets
// both managers and admins in, so the route group uses the same moderator
// guard as the manager panel.
type Handler struct {
	api *upstream.Client
}

func NewHandler(api *upstream.Client) *Handler {
	return &Handler{api: api}
}

func (h *Handler) ListUsers(c *gin.Context) {
	accounts, err := h.api.ListUsers(c.Request.Context(), middleware.Token(c))
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": accounts})
}

type updateUserRequest struct {
	Name     string `json:"nombre" binding:"required,min=1,max=50"`
	Email    string `json:"email" binding:"required,email"`
	RoleCode int    `json:"rol_id" binding:"required,min=1,max=3"`
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.api.UpdateUser(c.Request.Context(), middleware.Token(c), uint(id), upstream.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		RoleCode: req.RoleCode,
	})
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	log.WithFields(log.Fields{
		"user":  id,
		"admin": middleware.Viewer(c).ID,
	}).Info("user updated")
	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.api.DeleteUser(c.Request.Context(), middleware.Token(c), uint(id)); err != nil {
		respond.UpstreamError(c, err)
		return
	}

	log.WithFields(log.Fields{
		"user":  id,
		"admin": middleware.Viewer(c).ID,
	}).Info("user deleted")
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
