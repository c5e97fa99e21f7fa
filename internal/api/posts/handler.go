package posts

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"rally-gateway/internal/api/respond"
	"rally-gateway/internal/app/http/middleware"
	"rally-gateway/internal/domain/policy"
	"rally-gateway/internal/domain/post"
	"rally-gateway/internal/upstream"
)

// VoteLedger is the slice of the session store that tracks the per-session
// voted flag.
type VoteLedger interface {
	HasVoted(ctx context.Context, sessionID string, postID uint) (bool, error)
	MarkVoted(ctx context.Context, sessionID string, postID uint) error
	UnmarkVoted(ctx context.Context, sessionID string, postID uint) error
}

type Handler struct {
	api      *upstream.Client
	sessions VoteLedger
}

func NewHandler(api *upstream.Client, sessions VoteLedger) *Handler {
	return &Handler{api: api, sessions: sessions}
}

func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return uint(id), true
}

// Detail is the publication page: photo, votes, the viewer's voted flag and
// the comment thread. A pending publication renders the denial placeholder
// for everyone except its creator and moderators.
func (h *Handler) Detail(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)
	ctx := c.Request.Context()

	p, err := h.api.GetPost(ctx, id)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	if !policy.CanViewPost(viewer, *p) {
		respond.Denied(c, "this publication is awaiting approval")
		return
	}

	view := DetailView{
		Post:    *p,
		Gates:   policy.ComputePostGates(viewer, *p),
		Pending: p.State == post.StatePending,
	}

	if votes, err := h.api.VoteCount(ctx, id); err == nil {
		view.Votes = votes
	}
	if creator, err := h.api.GetUser(ctx, p.CreatorID); err == nil {
		view.Creator = creator
	}
	if sid := middleware.SessionID(c); sid != "" {
		if voted, err := h.sessions.HasVoted(ctx, sid, id); err == nil {
			view.Voted = voted
		}
	}

	comments, err := h.api.ListComments(ctx, id)
	if err == nil {
		view.Comments = make([]CommentEntry, 0, len(comments))
		for _, cm := range comments {
			view.Comments = append(view.Comments, CommentEntry{
				Comment: cm,
				Gates:   policy.ComputeCommentGates(viewer, cm),
			})
		}
	} else {
		view.Comments = []CommentEntry{}
	}

	c.JSON(http.StatusOK, view)
}

// Vote casts a vote with the session's mark as the client-side dedupe and
// the caller's IP as the upstream fingerprint. The mark is written
// optimistically and reverted if the upstream call fails, so a retry is
// possible after a transient error but a double-submit is not.
func (h *Handler) Vote(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	if sid != "" {
		voted, err := h.sessions.HasVoted(ctx, sid, id)
		if err == nil && voted {
			c.JSON(http.StatusConflict, gin.H{"voted": true, "message": "Already voted"})
			return
		}
		if err := h.sessions.MarkVoted(ctx, sid, id); err != nil {
			log.WithFields(log.Fields{"error": err, "post": id}).Warn("failed to mark vote")
		}
	}

	if err := h.api.CastVote(ctx, middleware.Token(c), id, c.ClientIP()); err != nil {
		if sid != "" {
			if uerr := h.sessions.UnmarkVoted(ctx, sid, id); uerr != nil {
				log.WithFields(log.Fields{"error": uerr, "post": id}).Warn("failed to revert vote mark")
			}
		}
		respond.UpstreamError(c, err)
		return
	}

	votes, _ := h.api.VoteCount(ctx, id)
	c.JSON(http.StatusOK, gin.H{"voted": true, "votos": votes})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)
	ctx := c.Request.Context()

	p, err := h.api.GetPost(ctx, id)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}
	if !policy.CanDeletePost(viewer, *p) {
		respond.Denied(c, "you cannot delete this publication")
		return
	}

	if err := h.api.DeletePost(ctx, middleware.Token(c), id); err != nil {
		respond.UpstreamError(c, err)
		return
	}

	log.WithFields(log.Fields{"post": id, "user": viewer.ID}).Info("post deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Publication deleted"})
}

func (h *Handler) ListComments(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	comments, err := h.api.ListComments(c.Request.Context(), id)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}

	out := make([]CommentEntry, 0, len(comments))
	for _, cm := range comments {
		out = append(out, CommentEntry{
			Comment: cm,
			Gates:   policy.ComputeCommentGates(viewer, cm),
		})
	}
	c.JSON(http.StatusOK, gin.H{"comments": out})
}

func (h *Handler) CreateComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)
	if !viewer.Authenticated {
		respond.Denied(c, "log in to comment")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.api.CreateComment(c.Request.Context(), middleware.Token(c), id, req.Body)
	if err != nil {
		respond.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": created})
}

// DeleteComment verifies authorship (or an elevated role) against the
// fetched comment before the destructive call is issued.
func (h *Handler) DeleteComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}
	viewer := middleware.Viewer(c)
	ctx := c.Request.Context()

	cm, err2 := h.api.GetComment(ctx, uint(id))
	if err2 != nil {
		respond.UpstreamError(c, err2)
		return
	}
	if !policy.CanDeleteComment(viewer, *cm) {
		respond.Denied(c, "you cannot delete this comment")
		return
	}

	if err := h.api.DeleteComment(ctx, middleware.Token(c), uint(id)); err != nil {
		respond.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
