package posts

import (
	"rally-gateway/internal/domain/comment"
	"rally-gateway/internal/domain/policy"
	"rally-gateway/internal/domain/post"
	"rally-gateway/internal/domain/users"
)

type CommentEntry struct {
	Comment comment.Comment     `json:"comment"`
	Gates   policy.CommentGates `json:"gates"`
}

type DetailView struct {
	Post     post.Post        `json:"post"`
	Gates    policy.PostGates `json:"gates"`
	Pending  bool             `json:"pending"`
	Votes    int              `json:"votos"`
	Voted    bool             `json:"voted"`
	Creator  *users.Account   `json:"creador,omitempty"`
	Comments []CommentEntry   `json:"comments"`
}

type CreateCommentRequest struct {
	Body string `json:"comentario" binding:"required,max=300"`
}
