package comment

import "time"

// Comment has no lifecycle: once created it is always visible, and only
// deletion (by author or a moderator) removes it.
type Comment struct {
	ID          uint      `json:"id"`
	PostID      uint      `json:"publicacion_id"`
	AuthorID    uint      `json:"usuario_id"`
	Body        string    `json:"comentario"`
	AuthorName  string    `json:"usuario_nombre,omitempty"`
	AuthorPhoto string    `json:"usuario_foto,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
