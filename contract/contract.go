//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"fmt"
)

// RemoteError carries a remote-reported failure: the service answered, but
// refused the operation. It is data, not a Go error; transport failures are
// returned as real errors by the clients.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) String() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// Result is the uniform envelope every remote call resolves to.
// Success=false means the service reported a failure and Error describes it;
// the caller's local state must be left untouched in that case.
type Result[T any] struct {
	Success bool
	Data    T
	Error   *RemoteError
}

// Ok wraps a successful payload.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail wraps a remote-reported failure.
func Fail[T any](status int, message string) Result[T] {
	return Result[T]{Error: &RemoteError{Status: status, Message: message}}
}

// PersonaRecord is a persona as the directory service serializes it.
type PersonaRecord struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DiscType        string `json:"discType"`
	Age             int    `json:"age,omitempty"`
	Gender          string `json:"gender,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// CreatePersonaRequest is the payload for persona creation.
type CreatePersonaRequest struct {
	DiscType string `json:"discType" validate:"required,oneof=D I S C"`
	Name     string `json:"name" validate:"required,max=40"`
	Age      int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=120"`
	Gender   string `json:"gender,omitempty"`
}

// TranscriptEntry is one message of a remote transcript.
type TranscriptEntry struct {
	ID              int64  `json:"id"`
	Content         string `json:"content"`
	SenderType      string `json:"senderType"`
	Timestamp       string `json:"timestamp,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	Emotion         string `json:"emotion,omitempty"`
}

// SenderTypeUser marks user-authored transcript entries.
const SenderTypeUser = "USER"

// ChatReply is the assistant turn returned by a send call.
type ChatReply struct {
	Content         string `json:"content"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	Emotion         string `json:"emotion,omitempty"`
}

// SummaryRecord is a transcript summary as the service serializes it.
type SummaryRecord struct {
	SummaryText  string `json:"summaryText"`
	Score        int    `json:"score"`
	CorePoints   string `json:"corePoints"`
	Improvements string `json:"improvements"`
	Tips         string `json:"tips"`
	Timestamp    string `json:"timestamp,omitempty"`
}

// PersonaDirectory is the remote persona directory service.
type PersonaDirectory interface {
	ListPersonas(ctx context.Context) (Result[[]PersonaRecord], error)
	CreatePersona(ctx context.Context, req CreatePersonaRequest) (Result[PersonaRecord], error)
	GetPersonaByID(ctx context.Context, personaID int) (Result[PersonaRecord], error)
	DeletePersona(ctx context.Context, personaID int) (Result[struct{}], error)
}

// TranscriptService is the remote chat transcript and summary service.
// GetLatestSummary resolves to a nil record (with Success=true) when the
// service has no summary for the persona yet.
type TranscriptService interface {
	GetHistory(ctx context.Context, personaID int) (Result[[]TranscriptEntry], error)
	SendMessage(ctx context.Context, personaID int, text string) (Result[ChatReply], error)
	GenerateSummary(ctx context.Context, personaID int) (Result[SummaryRecord], error)
	GetLatestSummary(ctx context.Context, personaID int) (Result[*SummaryRecord], error)
}
