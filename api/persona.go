package api

import (
	"context"
	"fmt"
	"net/http"

	"persona-chat/contract"
)

// ListPersonas fetches the full persona directory of the account.
func (c *Client) ListPersonas(ctx context.Context) (contract.Result[[]contract.PersonaRecord], error) {
	return doJSON[[]contract.PersonaRecord](ctx, c, http.MethodGet, "/api/personas", nil)
}

// CreatePersona registers a new persona and returns the server's record,
// including the assigned id.
func (c *Client) CreatePersona(ctx context.Context, req contract.CreatePersonaRequest) (contract.Result[contract.PersonaRecord], error) {
	return doJSON[contract.PersonaRecord](ctx, c, http.MethodPost, "/api/personas", req)
}

// GetPersonaByID fetches one persona's detail.
func (c *Client) GetPersonaByID(ctx context.Context, personaID int) (contract.Result[contract.PersonaRecord], error) {
	return doJSON[contract.PersonaRecord](ctx, c, http.MethodGet, fmt.Sprintf("/api/personas/%d", personaID), nil)
}

// DeletePersona asks the backend to delete the persona and its transcript.
func (c *Client) DeletePersona(ctx context.Context, personaID int) (contract.Result[struct{}], error) {
	return doJSON[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/api/personas/%d", personaID), nil)
}
