package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"
)

// Stable identity-provider error codes. Classification happens on these, not
// on error message text.
const (
	CodeEmailNotFound     = "EMAIL_NOT_FOUND"
	CodeInvalidPassword   = "INVALID_PASSWORD"
	CodeInvalidCredential = "INVALID_LOGIN_CREDENTIALS"
	CodeEmailExists       = "EMAIL_EXISTS"
)

// IdentityError carries the provider's error code for a rejected request.
type IdentityError struct {
	Code string
}

func (e *IdentityError) Error() string { return "identity provider: " + e.Code }

func (e *IdentityError) Unwrap() error { return utils.ErrAuthRejected }

// AuthSession is the result of a successful sign-in or sign-up.
type AuthSession struct {
	UserID        string
	Email         string
	IDToken       string
	RefreshToken  string
	EmailVerified bool
}

// AuthProvider is the identity collaborator. Only the operations the user
// repository needs are modeled; the provider itself is external.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*AuthSession, error)
	SignUp(ctx context.Context, email, password string) (*AuthSession, error)
	SignInMethods(ctx context.Context, email string) ([]string, error)
	SendVerificationEmail(ctx context.Context, idToken string) error
	SendPasswordReset(ctx context.Context, email string) error
	UpdateDisplayName(ctx context.Context, idToken, name string) error
	Lookup(ctx context.Context, idToken string) (*models.User, error)
}

// IdentityClient talks to an identitytoolkit-style REST identity provider.
type IdentityClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewIdentityClient(baseURL, apiKey string) *IdentityClient {
	return &IdentityClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type identitySessionResponse struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	IDToken       string `json:"idToken"`
	RefreshToken  string `json:"refreshToken"`
	EmailVerified bool   `json:"emailVerified"`
}

func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (*AuthSession, error) {
	body := map[string]any{"email": email, "password": password, "returnSecureToken": true}
	var out identitySessionResponse
	if err := c.post(ctx, "accounts:signInWithPassword", body, &out); err != nil {
		return nil, err
	}
	return &AuthSession{
		UserID:        out.LocalID,
		Email:         out.Email,
		IDToken:       out.IDToken,
		RefreshToken:  out.RefreshToken,
		EmailVerified: out.EmailVerified,
	}, nil
}

func (c *IdentityClient) SignUp(ctx context.Context, email, password string) (*AuthSession, error) {
	body := map[string]any{"email": email, "password": password, "returnSecureToken": true}
	var out identitySessionResponse
	if err := c.post(ctx, "accounts:signUp", body, &out); err != nil {
		return nil, err
	}
	return &AuthSession{
		UserID:       out.LocalID,
		Email:        out.Email,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
	}, nil
}

// SignInMethods reports which sign-in methods are registered for email. An
// empty slice means no such account.
func (c *IdentityClient) SignInMethods(ctx context.Context, email string) ([]string, error) {
	body := map[string]any{"identifier": email, "continueUri": "http://localhost"}
	var out struct {
		Registered    bool     `json:"registered"`
		SigninMethods []string `json:"signinMethods"`
	}
	if err := c.post(ctx, "accounts:createAuthUri", body, &out); err != nil {
		return nil, err
	}
	if len(out.SigninMethods) == 0 && out.Registered {
		return []string{"password"}, nil
	}
	return out.SigninMethods, nil
}

func (c *IdentityClient) SendVerificationEmail(ctx context.Context, idToken string) error {
	body := map[string]any{"requestType": "VERIFY_EMAIL", "idToken": idToken}
	return c.post(ctx, "accounts:sendOobCode", body, nil)
}

func (c *IdentityClient) SendPasswordReset(ctx context.Context, email string) error {
	body := map[string]any{"requestType": "PASSWORD_RESET", "email": email}
	return c.post(ctx, "accounts:sendOobCode", body, nil)
}

func (c *IdentityClient) UpdateDisplayName(ctx context.Context, idToken, name string) error {
	body := map[string]any{"idToken": idToken, "displayName": name, "returnSecureToken": false}
	return c.post(ctx, "accounts:update", body, nil)
}

func (c *IdentityClient) Lookup(ctx context.Context, idToken string) (*models.User, error) {
	body := map[string]any{"idToken": idToken}
	var out struct {
		Users []struct {
			LocalID       string `json:"localId"`
			Email         string `json:"email"`
			DisplayName   string `json:"displayName"`
			PhotoURL      string `json:"photoUrl"`
			EmailVerified bool   `json:"emailVerified"`
		} `json:"users"`
	}
	if err := c.post(ctx, "accounts:lookup", body, &out); err != nil {
		return nil, err
	}
	if len(out.Users) == 0 {
		return nil, fmt.Errorf("%w: account for session", utils.ErrNotFound)
	}
	u := out.Users[0]
	return &models.User{
		UserID:        u.LocalID,
		Username:      u.DisplayName,
		Email:         u.Email,
		AvatarURL:     u.PhotoURL,
		EmailVerified: u.EmailVerified,
	}, nil
}

func (c *IdentityClient) post(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", endpoint, err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", strings.TrimRight(c.BaseURL, "/"), endpoint, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", utils.ErrRemoteUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &IdentityError{Code: identityErrorCode(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %v", utils.ErrMalformedResponse, endpoint, err)
	}
	return nil
}

// identityErrorCode extracts the provider code from an error body shaped as
// {"error": {"message": "EMAIL_NOT_FOUND"}}. Suffixes after ":" are dropped
// ("WEAK_PASSWORD : ..." → "WEAK_PASSWORD").
func identityErrorCode(raw []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Error.Message == "" {
		return "UNKNOWN"
	}
	code, _, _ := strings.Cut(parsed.Error.Message, ":")
	return strings.TrimSpace(code)
}
