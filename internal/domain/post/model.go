package post

import "time"

// State is the approval state of a publication. Independent of the parent
// rally's state: an approved photo in a pending rally is still gated by its
// own state only.
type State string

const (
	StatePending  State = "pendiente"
	StateApproved State = "aprobada"
)

type Post struct {
	ID          uint      `json:"id"`
	Photo       string    `json:"fotografia"`
	Description string    `json:"descripcion"`
	State       State     `json:"estado"`
	CreatorID   uint      `json:"usuario_id"`
	RallyID     uint      `json:"rally_id"`
	CreatedAt   time.Time `json:"created_at"`
}
