package policy

import (
	"rally-gateway/internal/domain/comment"
	"rally-gateway/internal/domain/identity"
	"rally-gateway/internal/domain/post"
	"rally-gateway/internal/domain/rally"
)

// Gate structs bundle every affordance decision a view needs, so a handler
// makes one policy call per resource and ships the result straight into its
// response body.

type RallyGates struct {
	CanView    bool `json:"can_view"`
	CanEdit    bool `json:"can_edit"`
	CanDelete  bool `json:"can_delete"`
	CanPublish bool `json:"can_publish"`
}

type PostGates struct {
	CanView   bool `json:"can_view"`
	CanDelete bool `json:"can_delete"`
	CanVote   bool `json:"can_vote"`
}

type CommentGates struct {
	CanDelete bool `json:"can_delete"`
}

func ComputeRallyGates(v identity.Viewer, r rally.Rally) RallyGates {
	return RallyGates{
		CanView:    CanViewRally(v, r),
		CanEdit:    CanEditRally(v, r),
		CanDelete:  CanDeleteRally(v, r),
		CanPublish: CanPublishToRally(v, r),
	}
}

func ComputePostGates(v identity.Viewer, p post.Post) PostGates {
	return PostGates{
		CanView:   CanViewPost(v, p),
		CanDelete: CanDeletePost(v, p),
		CanVote:   CanVote(v, p),
	}
}

func ComputeCommentGates(v identity.Viewer, c comment.Comment) CommentGates {
	return CommentGates{
		CanDelete: CanDeleteComment(v, c),
	}
}
