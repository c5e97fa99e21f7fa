package rally

import "time"

// State is the rally lifecycle state as stored upstream. A rally is created
// pending and becomes active only through a moderation action; there is no
// transition back.
type State string

const (
	StatePending State = "pendiente"
	StateActive  State = "activo"
)

type Rally struct {
	ID          uint      `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	StartDate   time.Time `json:"fecha_inicio"`
	EndDate     time.Time `json:"fecha_fin"`
	Categories  string    `json:"categorias"`
	State       State     `json:"estado"`
	CreatorID   uint      `json:"creador_id"`
	MaxPhotos   int       `json:"cantidad_fotos_max"`
	Image       string    `json:"imagen,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Expired is a display label, not a state: an expired rally is still
// accessible, it just no longer accepts publications.
func (r Rally) Expired(now time.Time) bool {
	return now.After(r.EndDate)
}
