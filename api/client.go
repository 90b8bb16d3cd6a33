// Package api is the JSON-over-HTTP client for the persona backend. It
// implements the contract interfaces and owns bearer-token handling; every
// call resolves to the uniform success envelope, and only transport
// failures surface as errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"persona-chat/contract"
)

const (
	defaultTimeout   = 10 * time.Second
	maxErrorBodySize = 4 * 1024
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewClient(baseURL string, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log,
	}
}

// SetToken installs the bearer token used on subsequent requests. The
// token's expiry is decoded from its JWT claims so the client can
// invalidate it proactively instead of waiting for a 401.
func (c *Client) SetToken(token string) {
	exp := time.Time{}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		c.log.Debug("Access token is not a parseable JWT, relying on 401s", "err", err)
	} else if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.tokenExp = exp
}

// ClearToken drops the current token, e.g. after logout.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.tokenExp = time.Time{}
}

// Authenticated reports whether a usable token is installed.
func (c *Client) Authenticated() bool {
	return c.currentToken() != ""
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && !c.tokenExp.IsZero() && time.Now().After(c.tokenExp) {
		c.log.Info("Access token expired, clearing it")
		c.token = ""
		c.tokenExp = time.Time{}
	}
	return c.token
}

// remoteMessage is the error shape the backend uses for refusals.
type remoteMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// doJSON executes one request and maps the response to the envelope:
// transport problems return an error, non-2xx statuses return a
// remote-reported failure, 2xx bodies decode into T. A 401 additionally
// invalidates the stored token.
func doJSON[T any](ctx context.Context, c *Client, method, path string, payload any) (contract.Result[T], error) {
	var zero contract.Result[T]

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return zero, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.ClearToken()
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		message := remoteErrorMessage(raw)
		c.log.Debug("Remote refused request",
			"method", method, "path", path, "status", resp.StatusCode, "message", message)
		return contract.Fail[T](resp.StatusCode, message), nil
	}

	var data T
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil && err != io.EOF {
		return zero, fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}
	return contract.Ok(data), nil
}

func remoteErrorMessage(raw []byte) string {
	var parsed remoteMessage
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
