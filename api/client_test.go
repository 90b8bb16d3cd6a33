package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"persona-chat/contract"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, logs.GetLoggerFromLevel(slog.LevelDebug))
}

func TestClient_Login(t *testing.T) {
	req := require.New(t)

	token := signedToken(t, time.Now().Add(time.Hour))
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		req.Equal("/users/login", r.URL.Path)
		req.NotEmpty(r.Header.Get("X-Request-Id"))

		var body LoginRequest
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal("mina@example.com", body.Email)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"accessToken": token, "userId": 42},
		})
	})

	result, err := client.Login(context.Background(), "mina@example.com", "Secret123456!")
	req.NoError(err)
	req.True(result.Success)
	req.Equal(int64(42), result.Data.UserID)
	req.True(client.Authenticated())
}

func TestClient_BearerTokenHandling(t *testing.T) {
	t.Run("should send the bearer header once a token is installed", func(t *testing.T) {
		req := require.New(t)
		token := signedToken(t, time.Now().Add(time.Hour))

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			req.Equal("Bearer "+token, r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode([]contract.PersonaRecord{})
		})
		client.SetToken(token)

		result, err := client.ListPersonas(context.Background())
		req.NoError(err)
		req.True(result.Success)
	})

	t.Run("should clear the token on a 401", func(t *testing.T) {
		req := require.New(t)
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"token revoked"}`, http.StatusUnauthorized)
		})
		client.SetToken(signedToken(t, time.Now().Add(time.Hour)))

		result, err := client.ListPersonas(context.Background())
		req.NoError(err)
		req.False(result.Success)
		req.Equal(http.StatusUnauthorized, result.Error.Status)
		req.Equal("token revoked", result.Error.Message)
		req.False(client.Authenticated())
	})

	t.Run("should invalidate an expired token before sending it", func(t *testing.T) {
		req := require.New(t)
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			req.Empty(r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode([]contract.PersonaRecord{})
		})
		client.SetToken(signedToken(t, time.Now().Add(-time.Minute)))

		_, err := client.ListPersonas(context.Background())
		req.NoError(err)
		req.False(client.Authenticated())
	})
}

func TestClient_GetLatestSummary(t *testing.T) {
	t.Run("should map a 404 to success with no data", func(t *testing.T) {
		req := require.New(t)
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		result, err := client.GetLatestSummary(context.Background(), 1)
		req.NoError(err)
		req.True(result.Success)
		req.Nil(result.Data)
	})

	t.Run("should pass other refusals through", func(t *testing.T) {
		req := require.New(t)
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"nope"}`, http.StatusForbidden)
		})

		result, err := client.GetLatestSummary(context.Background(), 1)
		req.NoError(err)
		req.False(result.Success)
		req.Equal(http.StatusForbidden, result.Error.Status)
	})

	t.Run("should decode an existing summary", func(t *testing.T) {
		req := require.New(t)
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			req.Equal("/api/personas/7/summary", r.URL.Path)
			_ = json.NewEncoder(w).Encode(contract.SummaryRecord{Score: 9, Tips: "slow down"})
		})

		result, err := client.GetLatestSummary(context.Background(), 7)
		req.NoError(err)
		req.True(result.Success)
		req.NotNil(result.Data)
		req.Equal(9, result.Data.Score)
	})
}

func TestClient_SendMessage(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		req.Equal("/api/personas/3/chat", r.URL.Path)

		var body sendMessageRequest
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal("hello there", body.Message)

		_ = json.NewEncoder(w).Encode(contract.ChatReply{Content: "hi!", Emotion: "happy"})
	})

	result, err := client.SendMessage(context.Background(), 3, "hello there")
	req.NoError(err)
	req.True(result.Success)
	req.Equal("hi!", result.Data.Content)
	req.Equal("happy", result.Data.Emotion)
}

func TestClient_TransportError(t *testing.T) {
	req := require.New(t)

	client := NewClient("http://127.0.0.1:1", logs.GetLoggerFromLevel(slog.LevelDebug))
	_, err := client.ListPersonas(context.Background())
	req.Error(err)
}
