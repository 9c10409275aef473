// Package authapi is a typed client for the authentication backend. All
// exchanges carry credentials automatically through the client's cookie
// jar; the server issues and clears the session and step-token cookies.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Client talks to the auth backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an API client for the given base URL. The jar holds
// the session cookie and step tokens; pass a persistent jar to make
// multi-step flows resumable across process restarts. If httpClient is
// nil a default client with a 15 second timeout is used.
func NewClient(baseURL string, jar http.CookieJar, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	httpClient.Jar = jar
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// do sends one JSON exchange and decodes the response into result.
// body may be nil for GETs and empty POSTs.
func (c *Client) do(ctx context.Context, method, endpoint string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request to %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", endpoint, err)
	}

	c.logger.Debug("exchange",
		slog.String("method", method),
		slog.String("path", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: gjson.GetBytes(respBody, "message").Str,
			Path:    endpoint,
		}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response from %s: %w", endpoint, err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, result any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, result)
}

func (c *Client) post(ctx context.Context, endpoint string, body, result any) error {
	if body == nil {
		body = struct{}{}
	}
	return c.do(ctx, http.MethodPost, endpoint, body, result)
}

// GetUser resolves the current authenticated identity from the session
// cookie. Returns ErrUnauthenticated (wrapped) when there is none.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	var resp getUserResponse
	if err := c.get(ctx, "get-user", &resp); err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return resp.User, nil
}

// Login authenticates with email and password. The session cookie is
// set by the server; the returned message is for display only.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp messageResponse
	if err := c.post(ctx, "login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout destroys the current session.
func (c *Client) Logout(ctx context.Context) (string, error) {
	var resp messageResponse
	if err := c.post(ctx, "logout", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Register starts the registration flow. On success the server sends a
// verification OTP and sets the registration step token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.post(ctx, "register", registerRequest{Name: name, Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyRegistration completes registration with the emailed OTP.
func (c *Client) VerifyRegistration(ctx context.Context, otp string) (string, error) {
	var resp messageResponse
	if err := c.post(ctx, "verify-registration", otpRequest{OTP: otp}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResendRegistrationOTP requests a fresh registration OTP and returns
// the server's new cooldown in seconds.
func (c *Client) ResendRegistrationOTP(ctx context.Context) (int, error) {
	var resp ttlResponse
	if err := c.post(ctx, "resend-otp", nil, &resp); err != nil {
		return 0, err
	}
	return resp.TTL, nil
}

// RequestRecoveryOTP starts the password-recovery flow for the account
// with the given email.
func (c *Client) RequestRecoveryOTP(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	if err := c.post(ctx, "get-fp-otp", emailRequest{Email: email}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// VerifyRecoveryOTP advances recovery past the OTP step.
func (c *Client) VerifyRecoveryOTP(ctx context.Context, otp string) error {
	return c.post(ctx, "verify-fp-otp", otpRequest{OTP: otp}, nil)
}

// ResendRecoveryOTP requests a fresh recovery OTP.
func (c *Client) ResendRecoveryOTP(ctx context.Context) (*ResendRecoveryResponse, error) {
	var resp ResendRecoveryResponse
	if err := c.post(ctx, "resend-fp-otp", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CooldownTime returns the server's authoritative resend cooldown in
// seconds. Zero means resend is available now.
func (c *Client) CooldownTime(ctx context.Context) (int, error) {
	var resp ttlResponse
	if err := c.get(ctx, "get-cooldown-time", &resp); err != nil {
		return 0, err
	}
	return resp.TTL, nil
}

// ResetPassword sets a new password at the end of the recovery flow.
// It does not log the user in.
func (c *Client) ResetPassword(ctx context.Context, password, confirmPassword string) error {
	return c.post(ctx, "reset-password", resetPasswordRequest{
		Password:        password,
		ConfirmPassword: confirmPassword,
	}, nil)
}

// Sessions lists every active session for the current identity.
func (c *Client) Sessions(ctx context.Context) ([]Session, error) {
	var resp sessionListResponse
	if err := c.get(ctx, "get-sessions", &resp); err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return resp.Sessions, nil
}

// RevokeSession revokes the session with the given id and returns the
// authoritative remaining collection.
func (c *Client) RevokeSession(ctx context.Context, id string) (*SessionsResponse, error) {
	var resp SessionsResponse
	if err := c.post(ctx, "revoke-session", revokeSessionRequest{SessionToRevoke: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RevokeOtherSessions revokes every session except the caller's own.
func (c *Client) RevokeOtherSessions(ctx context.Context) (*SessionsResponse, error) {
	var resp SessionsResponse
	if err := c.post(ctx, "revoke-other-sessions", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
