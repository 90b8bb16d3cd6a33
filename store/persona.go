package store

import (
	"context"
	"fmt"
	"time"

	"persona-chat/contract"
	"persona-chat/domain"
	"persona-chat/errors"
	"persona-chat/observability"
)

// GenerateChatSummary asks the remote service to compute a fresh summary
// for the persona's transcript and, on confirmed success, overwrites the
// room's summary with the structured result. The raw envelope is returned
// so the UI can surface remote-reported failures; only a transport error is
// returned as an error, and a non-numeric persona id is refused before any
// network call.
func (s *Store) GenerateChatSummary(ctx context.Context, personaID domain.PersonaID) (contract.Result[contract.SummaryRecord], error) {
	id, ok := personaID.Numeric()
	if !ok {
		return contract.Result[contract.SummaryRecord]{}, fmt.Errorf("%w: %q", errors.ErrInvalidPersonaID, personaID)
	}

	s.progress.Begin(observability.OpGenerate)
	defer s.progress.End(observability.OpGenerate)

	result, err := s.chats.GenerateSummary(ctx, id)
	if err != nil {
		return contract.Result[contract.SummaryRecord]{}, fmt.Errorf("generate summary: %w", err)
	}
	if !result.Success {
		s.log.Error("Summary generation refused", "persona", personaID, "remote", result.Error.String())
		return result, nil
	}

	s.setSummary(domain.RoomIDFor(personaID), toSummary(result.Data, time.Now()))
	s.log.Info("Chat summary generated", "persona", personaID, "score", result.Data.Score)
	return result, nil
}

// DeletePersona deletes the persona remotely and removes its room locally
// only once the remote deletion is confirmed. A remote-reported failure is
// returned inside the envelope with local state untouched; a transport
// error is returned as an error.
func (s *Store) DeletePersona(ctx context.Context, personaID domain.PersonaID) (contract.Result[struct{}], error) {
	id, ok := personaID.Numeric()
	if !ok {
		return contract.Result[struct{}]{}, fmt.Errorf("%w: %q", errors.ErrInvalidPersonaID, personaID)
	}

	s.progress.Begin(observability.OpDelete)
	defer s.progress.End(observability.OpDelete)

	result, err := s.personas.DeletePersona(ctx, id)
	if err != nil {
		return contract.Result[struct{}]{}, fmt.Errorf("delete persona: %w", err)
	}
	if !result.Success {
		s.log.Error("Persona deletion refused", "persona", personaID, "remote", result.Error.String())
		return result, nil
	}

	s.RemoveChatRoom(domain.RoomIDFor(personaID))
	s.log.Info("Persona deleted", "persona", personaID)
	return result, nil
}
