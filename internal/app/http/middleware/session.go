package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"rally-gateway/internal/domain/identity"
	"rally-gateway/internal/domain/session"
	"rally-gateway/internal/domain/users"
)

const SessionCookie = "rally_session"

const (
	ctxViewer    = "viewer"
	ctxSessionID = "session_id"
	ctxToken     = "upstream_token"
)

// SessionReader is the slice of the session store the resolver needs.
type SessionReader interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// CredentialVerifier is the slice of the upstream client the resolver needs.
type CredentialVerifier interface {
	VerifyCredential(ctx context.Context, token string) (*users.Account, error)
}

// ResolveViewer resolves the requesting user's identity once per request and
// stores it on the context. It NEVER aborts: any failure along the chain
// (missing cookie, dead session, upstream rejection, network error) resolves
// to the anonymous viewer, exactly as if nobody were logged in. Handlers that
// require authentication check the viewer, not this middleware.
func ResolveViewer(store SessionReader, api CredentialVerifier, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := identity.Anonymous()
		token := ""

		if header := c.GetHeader("Authorization"); header != "" {
			// API-client mode: a raw upstream bearer token, no session row.
			token = strings.TrimPrefix(header, "Bearer ")
			if token == header {
				token = ""
			}
		} else if raw, err := c.Cookie(SessionCookie); err == nil {
			sid, err := session.ParseID(secret, raw)
			if err == nil {
				if sess, err := store.Get(c.Request.Context(), sid); err == nil {
					token = sess.Token
					c.Set(ctxSessionID, sess.ID)
				}
			}
		}

		if token != "" {
			acct, err := api.VerifyCredential(c.Request.Context(), token)
			if err == nil {
				viewer = identity.Viewer{
					ID:            acct.ID,
					Role:          identity.RoleFromWire(acct.RoleCode),
					Authenticated: true,
				}
				c.Set(ctxToken, token)
			} else {
				log.WithFields(log.Fields{"error": err}).Debug("credential resolution failed")
			}
		}

		c.Set(ctxViewer, viewer)
		c.Next()
	}
}

// Viewer returns the resolved viewer, anonymous when resolution never ran.
func Viewer(c *gin.Context) identity.Viewer {
	if v, ok := c.Get(ctxViewer); ok {
		if viewer, ok := v.(identity.Viewer); ok {
			return viewer
		}
	}
	return identity.Anonymous()
}

// Token returns the verified upstream bearer token, empty for anonymous
// viewers.
func Token(c *gin.Context) string {
	return c.GetString(ctxToken)
}

// SessionID returns the session row ID, empty in API-client mode.
func SessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
