package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"
)

// TokenProvider fetches and caches an OAuth2 client-credentials bearer token
// for the recipe API. The token is requested once, reused until shortly
// before expiry and refreshed under the same lock, so concurrent callers
// never trigger parallel fetches.
type TokenProvider struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// refreshMargin renews tokens before they actually lapse so in-flight
// requests never carry one that expires mid-call.
const refreshMargin = 30 * time.Second

func NewTokenProvider(tokenURL, clientID, clientSecret string) *TokenProvider {
	return &TokenProvider{
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns a valid bearer token, fetching or refreshing as needed.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.expiresAt.Add(-refreshMargin)) {
		return p.token, nil
	}

	form := url.Values{
		"grant_type": {"client_credentials"},
		"scope":      {"basic"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.SetBasicAuth(p.ClientID, p.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token endpoint: %v", utils.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint status %d", utils.ErrAuthRejected, resp.StatusCode)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.AccessToken == "" {
		return "", fmt.Errorf("%w: token response", utils.ErrMalformedResponse)
	}

	p.token = parsed.AccessToken
	p.expiresAt = time.Now().Add(time.Duration(parsed.ExpiresIn) * time.Second)
	return p.token, nil
}
