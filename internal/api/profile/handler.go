package profile

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rally-gateway/internal/api/respond"
	"rally-gateway/internal/app/http/middleware"
	"rally-gateway/internal/domain/policy"
	"rally-gateway/internal/domain/post"
	"rally-gateway/internal/domain/rally"
	"rally-gateway/internal/domain/users"
	"rally-gateway/internal/upstream"
)

type Handler struct {
	api *upstream.Client
}

func NewHandler(api *upstream.Client) *Handler {
	return &Handler{api: api}
}

type rallyEntry struct {
	Rally   rally.Rally `json:"rally"`
	Pending bool        `json:"pending"`
	Expired bool        `json:"expired"`
}

type postEntry struct {
	ID          uint   `json:"id"`
	Photo       string `json:"fotografia,omitempty"`
	RallyID     uint   `json:"rally_id"`
	Pending     bool   `json:"pending,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type view struct {
	User    *users.Account `json:"user"`
	Own     bool           `json:"own"`
	Rallies []rallyEntry   `json:"rallies"`
	Posts   []postEntry    `json:"posts"`
}

// Show renders a profile: the account plus their galleries and
// publications. Visitors only see what the policy lets through; the owner
// additionally sees their own pending work with its badge.
func (h *Handler) Show(c *gin.Context) {
	viewer := middleware.Viewer(c)
	ctx := c.Request.Context()

	var userID uint
	if param := c.Param("id"); param != "" {
		id, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		userID = uint(id)
	} else {
		if !viewer.Authenticated {
			respond.Denied(c, "log in to see your profile")
			return
		}
		userID = viewer.ID
	}

	own := viewer.Authenticated && viewer.ID == userID

	var acct *users.Account
	var err error
	if own {
		acct, err = h.api.GetUserPrivate(ctx, middleware.Token(c), userID)
	} else {
		acct, err = h.api.GetUser(ctx, userID)
	}
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	out := view{User: acct, Own: own, Rallies: []rallyEntry{}, Posts: []postEntry{}}
	now := time.Now()

	if rallies, err := h.api.ListRalliesByUser(ctx, userID); err == nil {
		for _, r := range rallies {
			if !policy.CanViewRally(viewer, r) {
				continue
			}
			out.Rallies = append(out.Rallies, rallyEntry{
				Rally:   r,
				Pending: r.State == rally.StatePending,
				Expired: r.Expired(now),
			})
		}
	}

	if posts, err := h.api.ListPostsByUser(ctx, userID); err == nil {
		for _, p := range posts {
			if !policy.CanViewPost(viewer, p) {
				out.Posts = append(out.Posts, postEntry{ID: p.ID, RallyID: p.RallyID, Placeholder: true})
				continue
			}
			out.Posts = append(out.Posts, postEntry{
				ID:      p.ID,
				Photo:   p.Photo,
				RallyID: p.RallyID,
				Pending: p.State == post.StatePending,
			})
		}
	}

	c.JSON(http.StatusOK, out)
}

type updateProfileRequest struct {
	Name  string `json:"nombre" binding:"required,min=1,max=50"`
	Email string `json:"email" binding:"required,email"`
}

// Update edits the viewer's own account. Role changes go through the
// administration table, never through here.
func (h *Handler) Update(c *gin.Context) {
	viewer := middleware.Viewer(c)
	if !viewer.Authenticated {
		respond.Denied(c, "log in to edit your profile")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.api.UpdateUser(c.Request.Context(), middleware.Token(c), viewer.ID, upstream.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
