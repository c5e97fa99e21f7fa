package identity

// Viewer is the requesting user's resolved identity for one request. It is
// rebuilt from the stored credential on every request and never cached across
// requests, so a failed resolution only ever downgrades the current one.
type Viewer struct {
	ID            uint `json:"id,omitempty"`
	Role          Role `json:"role"`
	Authenticated bool `json:"authenticated"`
}

// Anonymous is the fail-closed default: not authenticated, ordinary role.
// Every resolution failure maps here.
func Anonymous() Viewer {
	return Viewer{Role: RoleUser}
}

func (v Viewer) Owns(creatorID uint) bool {
	return v.Authenticated && v.ID == creatorID
}
