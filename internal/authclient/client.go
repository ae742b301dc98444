// Package authclient calls the external authentication provider that owns
// account identity for the portal. The portal never stores credentials; it
// exchanges them for a provider session and keeps only the resulting email
// and uid.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Account is the provider's view of an authenticated user.
type Account struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// SignupProfile carries the extra fields collected at registration.
type SignupProfile struct {
	Name      string `json:"name"`
	StudentID string `json:"studentId"`
	Role      string `json:"role"`
}

// Error is a provider failure tagged with the provider's error code. The
// code vocabulary is fixed; anything else falls back to a generic message.
type Error struct {
	Code string
}

func (e *Error) Error() string { return "auth provider: " + e.Code }

// Provider error codes.
const (
	CodeUserNotFound     = "auth/user-not-found"
	CodeWrongPassword    = "auth/wrong-password"
	CodeInvalidEmail     = "auth/invalid-email"
	CodeTooManyRequests  = "auth/too-many-requests"
	CodeInvalidCred      = "auth/invalid-credential"
	CodeUserDisabled     = "auth/user-disabled"
	CodeNetworkFailed    = "auth/network-request-failed"
	CodeInternal         = "auth/internal-error"
	CodeEmailInUse       = "auth/email-already-in-use"
	CodeWeakPassword     = "auth/weak-password"
)

var userMessages = map[string]string{
	CodeUserNotFound:    "No account found with this email",
	CodeWrongPassword:   "Incorrect password",
	CodeInvalidEmail:    "Invalid email address",
	CodeTooManyRequests: "Too many attempts. Please try again later.",
	CodeInvalidCred:     "Invalid email or password",
	CodeUserDisabled:    "This account has been disabled",
	CodeNetworkFailed:   "Network error. Please check your connection.",
	CodeInternal:        "An internal error occurred. Please try again.",
	CodeEmailInUse:      "Email is already registered",
	CodeWeakPassword:    "Password is too weak",
}

// UserMessage maps a provider error to the string shown to the user.
// Unrecognized codes and non-provider errors get the generic fallback.
func UserMessage(err error) string {
	if e, ok := err.(*Error); ok {
		if msg, ok := userMessages[e.Code]; ok {
			return msg
		}
	}
	return "Authentication failed. Please try again."
}

// Client calls the authentication backend.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Skip    bool // dev mode: accept any credentials without a backend
}

// New creates a client with a short timeout; auth calls should be fast.
func New(baseURL, apiKey string, skip bool) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Skip:    skip,
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges credentials for an account.
func (c *Client) Login(ctx context.Context, email, password string) (*Account, error) {
	if c.Skip {
		return &Account{UID: "dev-" + email, Email: email}, nil
	}
	if email == "" || password == "" {
		return nil, &Error{Code: CodeInvalidCred}
	}
	var out Account
	if err := c.post(ctx, "/v1/accounts:signIn", map[string]string{
		"email":    email,
		"password": password,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account with profile data stored provider-side.
func (c *Client) Signup(ctx context.Context, email, password string, profile SignupProfile) (*Account, error) {
	if c.Skip {
		return &Account{UID: "dev-" + email, Email: email}, nil
	}
	var out Account
	if err := c.post(ctx, "/v1/accounts:signUp", map[string]any{
		"email":    email,
		"password": password,
		"profile":  profile,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the provider session for the given uid.
func (c *Client) Logout(ctx context.Context, uid string) error {
	if c.Skip {
		return nil
	}
	return c.post(ctx, "/v1/accounts:signOut", map[string]string{"uid": uid}, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path+"?key="+c.APIKey, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &Error{Code: CodeNetworkFailed}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var errBody struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &errBody) == nil && errBody.Error.Code != "" {
			return &Error{Code: errBody.Error.Code}
		}
		return fmt.Errorf("auth provider error %s: %s", resp.Status, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	return nil
}
