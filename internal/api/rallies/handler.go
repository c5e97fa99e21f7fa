package rallies

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"rally-gateway/internal/api/respond"
	"rally-gateway/internal/app/http/middleware"
	"rally-gateway/internal/domain/policy"
	"rally-gateway/internal/domain/post"
	"rally-gateway/internal/domain/rally"
	"rally-gateway/internal/upstream"
)

type Handler struct {
	api *upstream.Client
}

func NewHandler(api *upstream.Client) *Handler {
	return &Handler{api: api}
}

func rallyID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rally id"})
		return 0, false
	}
	return uint(id), true
}

// Index is the landing-page card feed. Pending rallies only surface for
// viewers the policy lets see them.
func (h *Handler) Index(c *gin.Context) {
	viewer := middleware.Viewer(c)

	cards, err := h.api.ListRallyCards(c.Request.Context())
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	now := time.Now()
	out := make([]CardEntry, 0, len(cards))
	for _, r := range cards {
		if !policy.CanViewRally(viewer, r) {
			continue
		}
		out = append(out, CardEntry{
			Rally:   r,
			Pending: r.State == rally.StatePending,
			Expired: r.Expired(now),
		})
	}
	c.JSON(http.StatusOK, gin.H{"rallies": out})
}

// Detail is the rally page: info block, action gates, stats and the post
// grid. It is the heaviest gating site, re-deriving every affordance from
// the one policy package.
func (h *Handler) Detail(c *gin.Context) {
	id, ok := rallyID(c)
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)
	ctx := c.Request.Context()

	r, err := h.api.GetRally(ctx, id)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	if !policy.CanViewRally(viewer, *r) {
		respond.Denied(c, "this gallery is awaiting validation")
		return
	}

	view := DetailView{
		Rally:   *r,
		Gates:   policy.ComputeRallyGates(viewer, *r),
		Pending: r.State == rally.StatePending,
		Expired: r.Expired(time.Now()),
	}

	// Decorations degrade independently: a failed lookup leaves its field
	// empty without taking the page down.
	if creator, err := h.api.GetUser(ctx, r.CreatorID); err == nil {
		view.Creator = creator
	}
	if stats, err := h.api.GetRallyStats(ctx, id); err == nil {
		view.Stats = stats
	}

	posts, err := h.api.ListPostsForRally(ctx, id)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	view.Posts = make([]PostEntry, 0, len(posts))
	for _, p := range posts {
		if !policy.CanViewPost(viewer, p) {
			view.Posts = append(view.Posts, PostEntry{
				ID:          p.ID,
				Placeholder: true,
				Reason:      "awaiting approval",
			})
			continue
		}

		entry := PostEntry{ID: p.ID, Photo: p.Photo, Pending: p.State == post.StatePending}
		if votes, err := h.api.VoteCount(ctx, p.ID); err == nil {
			entry.Votes = votes
		}
		if creator, err := h.api.GetUser(ctx, p.CreatorID); err == nil {
			entry.Creator = creator
		}
		view.Posts = append(view.Posts, entry)
	}

	// Podium: the three most voted visible publications.
	visible := make([]PostEntry, 0, len(view.Posts))
	for _, e := range view.Posts {
		if !e.Placeholder {
			visible = append(visible, e)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].Votes > visible[j].Votes })
	if len(visible) > 3 {
		visible = visible[:3]
	}
	view.Podium = visible

	c.JSON(http.StatusOK, view)
}

// Create submits a new rally; it is born pending upstream and stays hidden
// until a moderator activates it.
func (h *Handler) Create(c *gin.Context) {
	viewer := middleware.Viewer(c)
	if !viewer.Authenticated {
		respond.Denied(c, "log in to create a gallery")
		return
	}

	var req CreateRallyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.api.CreateRally(c.Request.Context(), middleware.Token(c), upstream.CreateRallyInput{
		Name:        req.Name,
		Description: req.Description,
		EndDate:     req.EndDate,
		Categories:  req.Categories,
		MaxPhotos:   req.MaxPhotos,
	})
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	log.WithFields(log.Fields{"rally": created.ID, "user": viewer.ID}).Info("rally created")
	c.JSON(http.StatusCreated, gin.H{"rally": created})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := rallyID(c)
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)
	ctx := c.Request.Context()

	r, err := h.api.GetRally(ctx, id)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}
	if !policy.CanEditRally(viewer, *r) {
		respond.Denied(c, "only the creator or a manager can edit this gallery")
		return
	}

	var req UpdateRallyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.api.UpdateRally(ctx, middleware.Token(c), id, upstream.UpdateRallyInput{
		Name:        req.Name,
		Description: req.Description,
		EndDate:     req.EndDate,
		Categories:  req.Categories,
		MaxPhotos:   req.MaxPhotos,
	})
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gallery updated"})
}

// Delete removes a rally permanently. The policy check happens before the
// destructive call ever fires; there is no soft-delete state to return to.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := rallyID(c)
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)
	ctx := c.Request.Context()

	r, err := h.api.GetRally(ctx, id)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}
	if !policy.CanDeleteRally(viewer, *r) {
		respond.Denied(c, "you cannot delete this gallery")
		return
	}

	if err := h.api.DeleteRally(ctx, middleware.Token(c), id); err != nil {
		respond.UpstreamError(c, err)
		return
	}

	log.WithFields(log.Fields{"rally": id, "user": viewer.ID}).Info("rally deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Gallery deleted"})
}
