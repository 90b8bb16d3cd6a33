package api

import (
	"context"
	"net/http"

	"persona-chat/contract"
)

// LoginRequest are the credentials of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Gender   int    `json:"gender"`
	Role     string `json:"role"`
}

// Session is the authenticated session returned by login.
type Session struct {
	AccessToken string `json:"accessToken"`
	UserID      int64  `json:"userId"`
}

// User is the profile of the authenticated account.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// resultWrapper matches the backend's user endpoints, which nest their
// payload under "result" (unlike the persona and chat endpoints).
type resultWrapper[T any] struct {
	Result T `json:"result"`
}

// Login authenticates and installs the returned bearer token on success.
func (c *Client) Login(ctx context.Context, email, password string) (contract.Result[Session], error) {
	wrapped, err := doJSON[resultWrapper[Session]](ctx, c, http.MethodPost, "/users/login", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return contract.Result[Session]{}, err
	}
	if !wrapped.Success {
		return contract.Result[Session]{Error: wrapped.Error}, nil
	}

	c.SetToken(wrapped.Data.Result.AccessToken)
	return contract.Ok(wrapped.Data.Result), nil
}

// Register creates an account. It does not log the account in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (contract.Result[User], error) {
	wrapped, err := doJSON[resultWrapper[User]](ctx, c, http.MethodPost, "/users/join", req)
	if err != nil {
		return contract.Result[User]{}, err
	}
	if !wrapped.Success {
		return contract.Result[User]{Error: wrapped.Error}, nil
	}
	return contract.Ok(wrapped.Data.Result), nil
}

// CurrentUser fetches the profile bound to the installed token.
func (c *Client) CurrentUser(ctx context.Context) (contract.Result[User], error) {
	wrapped, err := doJSON[resultWrapper[User]](ctx, c, http.MethodGet, "/users/me", nil)
	if err != nil {
		return contract.Result[User]{}, err
	}
	if !wrapped.Success {
		return contract.Result[User]{Error: wrapped.Error}, nil
	}
	return contract.Ok(wrapped.Data.Result), nil
}
