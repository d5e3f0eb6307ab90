package prestodoctor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"presto-auth/internal/auth/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider fakes the prestodoctor token and profile endpoints.
type stubProvider struct {
	mux *http.ServeMux

	profileStatus        int
	profileBody          string
	recommendationStatus int
	recommendationBody   string
	photoStatus          int
	photoBody            string
	tokenStatus          int
}

func newStub() *stubProvider {
	s := &stubProvider{
		profileStatus:        http.StatusOK,
		profileBody:          `{"id":42,"email":"a@x.com","first_name":"Jane","last_name":"Doe"}`,
		recommendationStatus: http.StatusOK,
		recommendationBody:   `{"issued":1490000000,"expires":1520000000,"id_num":123}`,
		photoStatus:          http.StatusOK,
		photoBody:            `{"url":"http://prestodoctor.com/photos/p.jpg"}`,
		tokenStatus:          http.StatusOK,
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if s.tokenStatus != http.StatusOK {
			http.Error(w, `{"error":"invalid_grant"}`, s.tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","token_type":"bearer"}`))
	})
	s.mux.HandleFunc("/api/v1/user", s.authed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(s.profileStatus)
		_, _ = w.Write([]byte(s.profileBody))
	}))
	s.mux.HandleFunc("/api/v1/user/recommendation", s.authed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(s.recommendationStatus)
		_, _ = w.Write([]byte(s.recommendationBody))
	}))
	s.mux.HandleFunc("/api/v1/user/photo_id", s.authed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(s.photoStatus)
		_, _ = w.Write([]byte(s.photoBody))
	}))

	return s
}

func (s *stubProvider) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func newTestProvider(t *testing.T, s *stubProvider) *Provider {
	t.Helper()
	ts := httptest.NewServer(s.mux)
	t.Cleanup(ts.Close)

	p, err := New("client-id", "client-secret", "http://localhost/callback", ts.URL)
	require.NoError(t, err)
	return p
}

func TestExchangeCode_FetchesAllThreeFeeds(t *testing.T) {
	p := newTestProvider(t, newStub())

	result, err := p.ExchangeCode(context.Background(), "auth-code", "")
	require.NoError(t, err)

	assert.Equal(t, "prestodoctor", result.Provider)
	assert.Equal(t, "42", result.ProviderUserID)
	assert.Equal(t, "a@x.com", result.Email)
	assert.Equal(t, "Jane", result.BaseData["first_name"])
	assert.Equal(t, float64(1490000000), result.RecommendationData["issued"])
	assert.Equal(t, "http://prestodoctor.com/photos/p.jpg", result.PhotoData["url"])
}

func TestExchangeCode_QueryStringProfile(t *testing.T) {
	s := newStub()
	s.profileBody = "id=42&email=a%40x.com&first_name=Jane&last_name=Doe&dob=-621648001"
	p := newTestProvider(t, s)

	result, err := p.ExchangeCode(context.Background(), "auth-code", "")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", result.Email)
	assert.Equal(t, "-621648001", result.BaseData["dob"])
}

func TestExchangeCode_OptionalFeedsDegradeToEmpty(t *testing.T) {
	s := newStub()
	s.recommendationStatus = http.StatusNotFound
	s.recommendationBody = ""
	s.photoBody = ""
	p := newTestProvider(t, s)

	result, err := p.ExchangeCode(context.Background(), "auth-code", "")
	require.NoError(t, err)

	assert.Empty(t, result.RecommendationData)
	assert.Empty(t, result.PhotoData)
	assert.Equal(t, "a@x.com", result.Email)
}

func TestExchangeCode_ProfileFailureIsFatal(t *testing.T) {
	s := newStub()
	s.profileStatus = http.StatusInternalServerError
	s.profileBody = "boom"
	p := newTestProvider(t, s)

	_, err := p.ExchangeCode(context.Background(), "auth-code", "")
	require.ErrorIs(t, err, provider.ErrAuth)
	assert.Contains(t, err.Error(), "profile fetch failed")
}

func TestExchangeCode_TokenExchangeFailureIsFatal(t *testing.T) {
	s := newStub()
	s.tokenStatus = http.StatusBadRequest
	p := newTestProvider(t, s)

	_, err := p.ExchangeCode(context.Background(), "bad-code", "")
	require.ErrorIs(t, err, provider.ErrAuth)
	assert.Contains(t, err.Error(), "token exchange failed")
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New("", "secret", "http://localhost/callback", "")
	require.Error(t, err)
}

func TestAuthCodeURL_CarriesScopeAndState(t *testing.T) {
	p, err := New("client-id", "client-secret", "http://localhost/callback", "")
	require.NoError(t, err)

	u := p.AuthCodeURL("state-123", "ignored-challenge")

	assert.Contains(t, u, "https://prestodoctor.com/oauth/authorize")
	assert.Contains(t, u, "state=state-123")
	assert.Contains(t, u, "user_info+recommendation+photo_id")
}
