package api

import (
	"context"
	"fmt"
	"net/http"

	"persona-chat/contract"
)

type sendMessageRequest struct {
	Message string `json:"message"`
}

// GetHistory fetches the persona's full transcript.
func (c *Client) GetHistory(ctx context.Context, personaID int) (contract.Result[[]contract.TranscriptEntry], error) {
	return doJSON[[]contract.TranscriptEntry](ctx, c, http.MethodGet, fmt.Sprintf("/api/personas/%d/chat", personaID), nil)
}

// SendMessage submits one user turn and returns the assistant's reply.
func (c *Client) SendMessage(ctx context.Context, personaID int, text string) (contract.Result[contract.ChatReply], error) {
	return doJSON[contract.ChatReply](ctx, c, http.MethodPost,
		fmt.Sprintf("/api/personas/%d/chat", personaID), sendMessageRequest{Message: text})
}

// GenerateSummary asks the backend to compute a fresh transcript summary.
func (c *Client) GenerateSummary(ctx context.Context, personaID int) (contract.Result[contract.SummaryRecord], error) {
	return doJSON[contract.SummaryRecord](ctx, c, http.MethodPost, fmt.Sprintf("/api/personas/%d/summary", personaID), nil)
}

// GetLatestSummary fetches the most recent summary. A 404 is a valid
// answer meaning "no summary computed yet" and resolves to a successful
// envelope with no data.
func (c *Client) GetLatestSummary(ctx context.Context, personaID int) (contract.Result[*contract.SummaryRecord], error) {
	result, err := doJSON[*contract.SummaryRecord](ctx, c, http.MethodGet, fmt.Sprintf("/api/personas/%d/summary", personaID), nil)
	if err != nil {
		return contract.Result[*contract.SummaryRecord]{}, err
	}
	if !result.Success && result.Error.Status == http.StatusNotFound {
		return contract.Ok[*contract.SummaryRecord](nil), nil
	}
	return result, nil
}
