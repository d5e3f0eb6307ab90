// Package prestodoctor implements OAuth 2.0 authentication with the
// Prestodoctor medical credentialing provider. Prestodoctor is plain
// OAuth2 without ID tokens, so user data comes from three separate
// API fetches after the token exchange: the base profile, the medical
// recommendation and the government photo ID.
package prestodoctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"presto-auth/internal/auth"
	"presto-auth/internal/auth/provider"
	"presto-auth/internal/logger"

	"golang.org/x/oauth2"
)

const (
	providerName = "prestodoctor"

	defaultBaseURL = "https://prestodoctor.com"

	authPath    = "/oauth/authorize"
	tokenPath   = "/oauth/token"
	profilePath = "/api/v1/user"
)

// maxPayloadBytes caps provider response bodies; profile payloads are
// small and anything larger indicates a broken endpoint.
const maxPayloadBytes = 1 << 20

// Provider implements the prestodoctor OAuth2 flow plus the three
// profile data fetches. It returns raw provider data only; no user or
// session decisions are made here.
type Provider struct {
	oauthConfig *oauth2.Config
	baseURL     string
	timeout     time.Duration
}

// New creates a Prestodoctor provider. baseURL overrides the provider
// host (used by tests); empty means production.
func New(clientID, clientSecret, redirectURL, baseURL string) (*Provider, error) {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("prestodoctor oauth config missing required fields")
	}

	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  baseURL + authPath,
			TokenURL: baseURL + tokenPath,
		},
		// Fixed scope set: profile, medical evaluation, photo ID.
		Scopes: []string{"user_info", "recommendation", "photo_id"},
	}

	return &Provider{
		oauthConfig: oauthCfg,
		baseURL:     baseURL,
		timeout:     10 * time.Second,
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the OAuth authorization URL. Prestodoctor does
// not support PKCE, so the challenge is ignored.
func (p *Provider) AuthCodeURL(state string, _ string) string {
	return p.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCode exchanges the authorization code and fetches the three
// data feeds. The token exchange and the base profile fetch are
// mandatory; recommendation and photo fetches yield empty maps when
// the user has no evaluation or photo on file.
func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
	_ string,
) (*auth.LoginResult, error) {

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: prestodoctor token exchange failed: %v", provider.ErrAuth, err)
	}

	client := p.oauthConfig.Client(ctx, token)

	baseData, err := p.fetch(ctx, client, profilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: prestodoctor profile fetch failed: %v", provider.ErrAuth, err)
	}

	// Recommendation data is empty if the user has not done a medical
	// evaluation yet; same for the photo ID. Neither fails the login.
	recommendation, err := p.fetchOptional(ctx, client, profilePath+"/recommendation")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrAuth, err)
	}
	photo, err := p.fetchOptional(ctx, client, profilePath+"/photo_id")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrAuth, err)
	}

	email, _ := baseData["email"].(string)

	logger.Info("prestodoctor login data fetched", map[string]any{
		"email_present":          email != "",
		"recommendation_on_file": len(recommendation) > 0,
		"photo_on_file":          len(photo) > 0,
	})

	return &auth.LoginResult{
		Provider:           providerName,
		ProviderUserID:     stringify(baseData["id"]),
		Email:              email,
		EmailVerified:      email != "",
		BaseData:           baseData,
		RecommendationData: recommendation,
		PhotoData:          photo,
	}, nil
}

// fetch issues an authenticated GET and parses the body. A non-2xx
// status or unparseable body is an error.
func (p *Provider) fetch(ctx context.Context, client *http.Client, path string) (map[string]any, error) {
	body, status, err := p.get(ctx, client, path)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("prestodoctor %s returned status %d", path, status)
	}
	return parsePayload(body)
}

// fetchOptional is like fetch but treats 404 and empty bodies as "no
// data on file" and returns an empty map.
func (p *Provider) fetchOptional(ctx context.Context, client *http.Client, path string) (map[string]any, error) {
	body, status, err := p.get(ctx, client, path)
	if err != nil {
		return nil, fmt.Errorf("prestodoctor %s fetch failed: %w", path, err)
	}
	if status == http.StatusNotFound || len(body) == 0 {
		return map[string]any{}, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("prestodoctor %s returned status %d", path, status)
	}

	data, err := parsePayload(body)
	if err != nil {
		return nil, fmt.Errorf("prestodoctor %s parse failed: %w", path, err)
	}
	return data, nil
}

func (p *Provider) get(ctx context.Context, client *http.Client, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

// stringify renders the provider user id, which arrives as a JSON
// number or a query-string value depending on the endpoint encoding.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
