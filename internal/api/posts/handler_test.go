package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rally-gateway/internal/app/http/middleware"
	"rally-gateway/internal/domain/session"
	"rally-gateway/internal/upstream"
)

var testSecret = []byte("test-secret")

// upstreamFake speaks the collaborator wire contract over httptest, so the
// handler is exercised through the real client.
type upstreamFake struct {
	mux *http.ServeMux

	votesCast      int
	voteStatus     int
	commentDeletes int
	uploads        int
}

func newUpstreamFake() *upstreamFake {
	f := &upstreamFake{mux: http.NewServeMux(), voteStatus: http.StatusCreated}

	f.mux.HandleFunc("POST /auth/verify-token", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer tok-7":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"user": map[string]interface{}{"id": 7, "nombre": "Ana", "rol_id": 1},
			})
		case "Bearer tok-3":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"user": map[string]interface{}{"id": 3, "nombre": "Luis", "rol_id": 1},
			})
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})

	f.mux.HandleFunc("GET /publicaciones/10", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 10, "estado": "pendiente", "usuario_id": 7, "rally_id": 1,
			"fotografia": "a.jpg", "descripcion": "mi foto",
		})
	})
	f.mux.HandleFunc("GET /publicaciones/11", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 11, "estado": "aprobada", "usuario_id": 7, "rally_id": 1,
			"fotografia": "b.jpg",
		})
	})

	f.mux.HandleFunc("GET /votaciones", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1},{"id":2}]`))
	})
	f.mux.HandleFunc("POST /votaciones", func(w http.ResponseWriter, r *http.Request) {
		if f.voteStatus >= 400 {
			w.WriteHeader(f.voteStatus)
			return
		}
		f.votesCast++
		w.WriteHeader(f.voteStatus)
	})

	f.mux.HandleFunc("GET /comentarios", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":5,"publicacion_id":11,"usuario_id":9,"comentario":"bonita"}]`))
	})
	f.mux.HandleFunc("GET /comentarios/5", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":5,"publicacion_id":11,"usuario_id":9,"comentario":"bonita"}`))
	})
	f.mux.HandleFunc("DELETE /comentarios/5", func(w http.ResponseWriter, r *http.Request) {
		f.commentDeletes++
		w.WriteHeader(http.StatusOK)
	})

	f.mux.HandleFunc("GET /usuarios/7", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 7, "nombre": "Ana"})
	})

	f.mux.HandleFunc("GET /rallies/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"nombre":"Urbano","estado":"activo","creador_id":9,"fecha_fin":"2099-01-01T00:00:00Z"}`))
	})
	f.mux.HandleFunc("GET /rallies/2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":2,"nombre":"Secreto","estado":"pendiente","creador_id":9,"fecha_fin":"2099-01-01T00:00:00Z"}`))
	})
	f.mux.HandleFunc("POST /publicaciones", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.uploads++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 50, "estado": "pendiente",
			"descripcion": r.FormValue("descripcion"),
		})
	})

	return f
}

// fakeSessions backs both the viewer resolution and the vote ledger.
type fakeSessions struct {
	rows  map[string]*session.Session
	marks map[string]bool
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		rows:  map[string]*session.Session{},
		marks: map[string]bool{},
	}
}

func markKey(sid string, postID uint) string {
	return fmt.Sprintf("%s/%d", sid, postID)
}

func (f *fakeSessions) Get(_ context.Context, id string) (*session.Session, error) {
	if s, ok := f.rows[id]; ok {
		return s, nil
	}
	return nil, session.ErrNotFound
}

func (f *fakeSessions) HasVoted(_ context.Context, sid string, postID uint) (bool, error) {
	return f.marks[markKey(sid, postID)], nil
}

func (f *fakeSessions) MarkVoted(_ context.Context, sid string, postID uint) error {
	f.marks[markKey(sid, postID)] = true
	return nil
}

func (f *fakeSessions) UnmarkVoted(_ context.Context, sid string, postID uint) error {
	delete(f.marks, markKey(sid, postID))
	return nil
}

type fixture struct {
	router   *gin.Engine
	fake     *upstreamFake
	sessions *fakeSessions
	srv      *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := newUpstreamFake()
	srv := httptest.NewServer(fake.mux)
	t.Cleanup(srv.Close)

	api := upstream.New(srv.URL, 5*time.Second)
	sessions := newFakeSessions()
	h := NewHandler(api, sessions)

	r := gin.New()
	r.Use(middleware.ResolveViewer(sessions, api, testSecret))
	r.GET("/views/posts/:id", h.Detail)
	r.POST("/posts/:id/vote", h.Vote)
	r.DELETE("/posts/:id", h.Delete)
	r.DELETE("/comments/:id", h.DeleteComment)
	r.POST("/rallies/:id/posts", h.Publish)

	return &fixture{router: r, fake: fake, sessions: sessions, srv: srv}
}

// login creates a session row and returns the signed cookie for it.
func (f *fixture) login(t *testing.T, sid string, userID uint, token string) *http.Cookie {
	t.Helper()
	f.sessions.rows[sid] = &session.Session{ID: sid, Token: token, UserID: userID}
	signed, err := session.SignID(testSecret, sid)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookie, Value: signed}
}

func (f *fixture) do(method, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestDetailPendingDeniedToAnonymous(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/views/posts/10")

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["denied"])
	assert.NotEmpty(t, body["reason"])
	// The placeholder must leak nothing about the publication itself.
	assert.NotContains(t, w.Body.String(), "a.jpg")
}

func TestDetailPendingVisibleToOwner(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t, "sid-7", 7, "tok-7")

	w := f.do(http.MethodGet, "/views/posts/10", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	var view DetailView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.True(t, view.Pending)
	assert.True(t, view.Gates.CanView)
	assert.True(t, view.Gates.CanDelete)
	assert.Equal(t, 2, view.Votes)
}

func TestDetailApprovedPublic(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/views/posts/11")

	require.Equal(t, http.StatusOK, w.Code)
	var view DetailView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.False(t, view.Pending)
	assert.False(t, view.Gates.CanDelete)
	require.Len(t, view.Comments, 1)
	assert.False(t, view.Comments[0].Gates.CanDelete)
}

func TestVoteThenDoubleVote(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t, "sid-7", 7, "tok-7")

	first := f.do(http.MethodPost, "/posts/11/vote", cookie)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, f.fake.votesCast)

	second := f.do(http.MethodPost, "/posts/11/vote", cookie)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, 1, f.fake.votesCast, "duplicate vote must not reach the upstream")
	assert.Contains(t, second.Body.String(), "Already voted")
}

func TestVoteRevertsMarkOnUpstreamFailure(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t, "sid-7", 7, "tok-7")
	f.fake.voteStatus = http.StatusInternalServerError

	w := f.do(http.MethodPost, "/posts/11/vote", cookie)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, f.sessions.marks, "optimistic mark must be reverted")

	// After the transient failure clears, the same session can vote again.
	f.fake.voteStatus = http.StatusCreated
	retry := f.do(http.MethodPost, "/posts/11/vote", cookie)
	assert.Equal(t, http.StatusOK, retry.Code)
}

func TestDeleteCommentDeniedBeforeUpstreamCall(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t, "sid-3", 3, "tok-3")

	w := f.do(http.MethodDelete, "/comments/5", cookie)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"denied":true`)
	assert.Zero(t, f.fake.commentDeletes, "denied delete must never hit the upstream")
}

func TestDeletePostDeniedToStranger(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t, "sid-3", 3, "tok-3")

	w := f.do(http.MethodDelete, "/posts/11", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDetailUnknownPost(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/views/posts/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailBadID(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/views/posts/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "invalid post id"))
}
