package auth

import (
	"context"
	"encoding/json"
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

// memoryStore is an in-memory stand-in for the gorm-backed session store.
type memoryStore struct {
	rows map[string]*session.Session
	next int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[string]*session.Session{}}
}

func (m *memoryStore) Create(_ context.Context, userID uint, token string) (*session.Session, error) {
	m.next++
	sess := &session.Session{ID: "sid-" + strings.Repeat("x", m.next), Token: token, UserID: userID}
	m.rows[sess.ID] = sess
	return sess, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (*session.Session, error) {
	if s, ok := m.rows[id]; ok {
		return s, nil
	}
	return nil, session.ErrNotFound
}

type fixture struct {
	router *gin.Engine
	store  *memoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] == "ana@example.com" && body["password"] == "secret1" {
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-7"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /auth/verify-token", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer tok-7" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"user": map[string]interface{}{"id": 7, "nombre": "Ana", "rol_id": 1},
			})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /usuarios/7", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 7, "nombre": "Ana", "rol_id": 1})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	api := upstream.New(srv.URL, 5*time.Second)
	store := newMemoryStore()
	h := NewHandler(api, store, testSecret)

	r := gin.New()
	r.Use(middleware.ResolveViewer(store, api, testSecret))
	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", h.Me)

	return &fixture{router: r, store: store}
}

func (f *fixture) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookie := sessionCookie(w)
	require.NotNil(t, cookie, "login must set the session cookie")
	assert.True(t, cookie.HttpOnly)
	assert.NotContains(t, cookie.Value, "tok-7", "the upstream token must never reach the browser")

	// The cookie is a signed session ID pointing at a stored row.
	sid, err := session.ParseID(testSecret, cookie.Value)
	require.NoError(t, err)
	row, err := f.store.Get(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, "tok-7", row.Token)
	assert.Equal(t, uint(7), row.UserID)

	assert.Contains(t, w.Body.String(), `"nombre":"Ana"`)
	assert.NotContains(t, w.Body.String(), "tok-7")
}

func TestLoginBadCredentials(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))
	assert.Empty(t, f.store.rows)
}

func TestLoginValidation(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/auth/login", `{"email":"not-an-email","password":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/auth/register", `{"nombre":"Ana","email":"ana@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	short := f.do(http.MethodPost, "/auth/register", `{"nombre":"A","email":"a@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, short.Code)
}

func TestLogoutDropsSession(t *testing.T) {
	f := newFixture(t)

	login := f.do(http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"secret1"}`)
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)
	require.Len(t, f.store.rows, 1)

	logout := f.do(http.MethodPost, "/auth/logout", "", cookie)
	assert.Equal(t, http.StatusOK, logout.Code)
	assert.Empty(t, f.store.rows, "logout must delete the session row")

	cleared := sessionCookie(logout)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0, "logout must expire the cookie")
}

func TestMeAnonymous(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Viewer struct {
			Authenticated bool `json:"authenticated"`
		} `json:"viewer"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Viewer.Authenticated)
}

func TestMeAuthenticated(t *testing.T) {
	f := newFixture(t)

	login := f.do(http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"secret1"}`)
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	w := f.do(http.MethodGet, "/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"nombre":"Ana"`)
}
