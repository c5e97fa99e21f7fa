package users

import "time"

// Account is a user record as the upstream API returns it. The gateway never
// stores accounts; these rows exist only inside a response on their way to the
// administration table or a profile view.
type Account struct {
	ID        uint      `json:"id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	RoleCode  int       `json:"rol_id"`
	Photo     string    `json:"foto_perfil,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
