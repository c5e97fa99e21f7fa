package session

import "time"

// Session is the gateway's custody record for one logged-in browser: the
// opaque upstream bearer token plus whatever per-session flags the interface
// tracks. The browser only ever holds the signed session ID.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Token     string    `gorm:"not null" json:"-"`
	UserID    uint      `gorm:"index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// VoteMark records that a session already voted on a publication. It is what
// suppresses the second vote attempt client-side; the upstream keeps its own
// (weak, IP-based) duplicate check.
type VoteMark struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SessionID string    `gorm:"size:36;uniqueIndex:idx_session_post" json:"-"`
	PostID    uint      `gorm:"uniqueIndex:idx_session_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
