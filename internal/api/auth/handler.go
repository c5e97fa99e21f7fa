package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"rally-gateway/internal/api/respond"
	"rally-gateway/internal/app/http/middleware"
	"rally-gateway/internal/domain/session"
	"rally-gateway/internal/upstream"
)

const cookieMaxAge = 30 * 24 * 60 * 60

// SessionStore is the slice of the session store the auth surface needs.
type SessionStore interface {
	Create(ctx context.Context, userID uint, token string) (*session.Session, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	api      *upstream.Client
	sessions SessionStore
	secret   []byte
}

func NewHandler(api *upstream.Client, sessions SessionStore, secret []byte) *Handler {
	return &Handler{api: api, sessions: sessions, secret: secret}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials upstream, then takes custody of the bearer
// token in a new session row. The browser gets only the signed session ID.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.api.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	acct, err := h.api.VerifyCredential(c.Request.Context(), token)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), acct.ID, token)
	if err != nil {
		log.WithFields(log.Fields{"error": err}).Error("failed to create session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start session"})
		return
	}

	signed, err := session.SignID(h.secret, sess.ID)
	if err != nil {
		log.WithFields(log.Fields{"error": err}).Error("failed to sign session cookie")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start session"})
		return
	}

	c.SetCookie(middleware.SessionCookie, signed, cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": acct})
}

type registerRequest struct {
	Name     string `json:"nombre" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.api.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		respond.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registered. Check your email to verify the account."})
}

// Logout invalidates the session row, which also drops its vote marks. The
// upstream token dies with the row.
func (h *Handler) Logout(c *gin.Context) {
	if sid := middleware.SessionID(c); sid != "" {
		if err := h.sessions.Delete(c.Request.Context(), sid); err != nil {
			log.WithFields(log.Fields{"error": err, "session": sid}).Warn("failed to delete session")
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me reports the resolved viewer. Anonymous is a valid answer, not an error;
// the interface uses it to decide what to render before anything else loads.
func (h *Handler) Me(c *gin.Context) {
	viewer := middleware.Viewer(c)
	if !viewer.Authenticated {
		c.JSON(http.StatusOK, gin.H{"viewer": viewer})
		return
	}

	acct, err := h.api.GetUser(c.Request.Context(), viewer.ID)
	if err != nil {
		// Identity already verified this request; degrade to the bare viewer.
		c.JSON(http.StatusOK, gin.H{"viewer": viewer})
		return
	}
	c.JSON(http.StatusOK, gin.H{"viewer": viewer, "user": acct})
}

type recoverRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req recoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.api.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respond.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the address exists, a reset email is on its way."})
}

func (h *Handler) ResetPasswordInfo(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}
	email, err := h.api.ResetPasswordInfo(c.Request.Context(), token)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email})
}

type resetRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.api.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		respond.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
