package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"presto-auth/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessionStore struct {
	sessions map[string]session.Session
}

func (s *memSessionStore) Create(ctx context.Context, sess session.Session) error {
	s.sessions[sess.SessionID] = sess
	return nil
}

func (s *memSessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *memSessionStore) Delete(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newTestRouter(store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAuthMiddleware(store).RequireAuth())
	r.GET("/protected", func(c *gin.Context) {
		userID, _ := UserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestRequireAuth_ValidSession(t *testing.T) {
	store := &memSessionStore{sessions: map[string]session.Session{
		"sid-1": {
			SessionID: "sid-1",
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}}
	r := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	r := newTestRouter(&memSessionStore{sessions: map[string]session.Session{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredSession(t *testing.T) {
	store := &memSessionStore{sessions: map[string]session.Session{
		"sid-1": {
			SessionID: "sid-1",
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(-time.Minute),
		},
	}}
	r := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// Expired session is evicted from the store.
	assert.Empty(t, store.sessions)
}
