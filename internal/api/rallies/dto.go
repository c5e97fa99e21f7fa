package rallies

import (
	"rally-gateway/internal/domain/policy"
	"rally-gateway/internal/domain/rally"
	"rally-gateway/internal/domain/users"
	"rally-gateway/internal/upstream"
)

type CreateRallyRequest struct {
	Name        string `json:"nombre" binding:"required,min=1,max=100"`
	Description string `json:"descripcion" binding:"required,max=1000"`
	EndDate     string `json:"fecha_fin" binding:"required"`
	Categories  string `json:"categorias" binding:"required"`
	MaxPhotos   int    `json:"cantidad_fotos_max" binding:"required,min=1,max=50"`
}

type UpdateRallyRequest struct {
	Name        string `json:"nombre,omitempty" binding:"omitempty,min=1,max=100"`
	Description string `json:"descripcion,omitempty" binding:"omitempty,max=1000"`
	EndDate     string `json:"fecha_fin,omitempty"`
	Categories  string `json:"categorias,omitempty"`
	MaxPhotos   int    `json:"cantidad_fotos_max,omitempty" binding:"omitempty,min=1,max=50"`
}

// PostEntry is one card in the rally detail grid. A publication the viewer
// may not see keeps its slot as a placeholder instead of vanishing.
type PostEntry struct {
	ID          uint           `json:"id"`
	Placeholder bool           `json:"placeholder,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	Photo       string         `json:"fotografia,omitempty"`
	Pending     bool           `json:"pending,omitempty"`
	Votes       int            `json:"votos"`
	Creator     *users.Account `json:"creador,omitempty"`
}

type CardEntry struct {
	Rally   rally.Rally `json:"rally"`
	Pending bool        `json:"pending,omitempty"`
	Expired bool        `json:"expired"`
}

type DetailView struct {
	Rally   rally.Rally          `json:"rally"`
	Gates   policy.RallyGates    `json:"gates"`
	Pending bool                 `json:"pending"`
	Expired bool                 `json:"expired"`
	Creator *users.Account       `json:"creador,omitempty"`
	Posts   []PostEntry          `json:"posts"`
	Podium  []PostEntry          `json:"podium"`
	Stats   *upstream.RallyStats `json:"stats,omitempty"`
}
