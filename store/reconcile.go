package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"

	"persona-chat/contract"
	"persona-chat/domain"
	"persona-chat/observability"
)

// SyncPersonasAndChats performs the bulk reconciliation against the remote
// directory: one room per persona, transcripts reloaded, and the whole room
// collection replaced in a single atomic assignment. Names already known
// locally and already computed summaries are carried forward. A concurrent
// call awaits the in-flight run instead of racing its final replacement.
func (s *Store) SyncPersonasAndChats(ctx context.Context) error {
	return s.syncFlight.do(func() error {
		s.progress.Begin(observability.OpSync)
		defer s.progress.End(observability.OpSync)
		return s.syncPersonasAndChats(ctx)
	})
}

func (s *Store) syncPersonasAndChats(ctx context.Context) error {
	// Pre-sync snapshot: the merge rules below prefer what this client
	// already knows (fresh local names, computed summaries) over a
	// directory that may lag behind.
	current := s.snapshot()

	listed, err := s.personas.ListPersonas(ctx)
	if err != nil {
		// Fail-soft: existing state stays untouched.
		s.log.Error("Persona directory unreachable, keeping local state", "err", err)
		return fmt.Errorf("list personas: %w", err)
	}
	if !listed.Success {
		s.log.Error("Persona directory refused listing, keeping local state", "remote", listed.Error.String())
		return fmt.Errorf("list personas: remote failure (%s)", listed.Error.String())
	}

	next := make(map[domain.RoomID]domain.ChatRoom, len(listed.Data))
	for _, record := range listed.Data {
		personaID := domain.PersonaID(strconv.FormatInt(record.ID, 10))
		roomID := domain.RoomIDFor(personaID)

		// Merge-preserve the display name: local value first, then the
		// directory, then the placeholder.
		name := record.Name
		var summary *domain.Summary
		if existing, ok := current[roomID]; ok {
			if existing.PersonaName != "" {
				name = existing.PersonaName
			}
			if existing.Summary != nil {
				copied := *existing.Summary
				summary = &copied
			}
		}
		if name == "" {
			name = domain.PlaceholderName
		}

		room := domain.ChatRoom{
			ID:          roomID,
			PersonaID:   personaID,
			DISCType:    domain.ParseDISCType(record.DiscType),
			PersonaName: name,
			Summary:     summary,
		}

		// A transcript failure is isolated to its room: the room still
		// exists after the sync, just with no messages.
		history, err := s.chats.GetHistory(ctx, int(record.ID))
		switch {
		case err != nil:
			s.log.Error("Transcript fetch failed, keeping room empty", "persona", personaID, "err", err)
		case !history.Success:
			s.log.Error("Transcript refused, keeping room empty", "persona", personaID, "remote", history.Error.String())
		default:
			room.Messages = lo.Map(history.Data, func(entry contract.TranscriptEntry, _ int) domain.Message {
				return toMessage(entry)
			})
		}

		next[roomID] = room
	}

	// Single atomic replacement: the UI never observes a half-synced
	// collection. Rooms known only locally are dropped here on purpose.
	s.mu.Lock()
	s.rooms = next
	s.mu.Unlock()

	s.log.Info("Personas and transcripts synchronized", "rooms", len(next))
	return nil
}

// FetchChatSummaries refreshes the latest summary of every room whose
// persona id is numeric. A missing summary leaves the room's summary
// absent; a failure for one room never blocks the remaining rooms.
func (s *Store) FetchChatSummaries(ctx context.Context) error {
	return s.summariesFlight.do(func() error {
		s.progress.Begin(observability.OpSummaries)
		defer s.progress.End(observability.OpSummaries)
		return s.fetchChatSummaries(ctx)
	})
}

func (s *Store) fetchChatSummaries(ctx context.Context) error {
	for roomID, room := range s.snapshot() {
		personaID, ok := room.PersonaID.Numeric()
		if !ok {
			continue
		}

		latest, err := s.chats.GetLatestSummary(ctx, personaID)
		if err != nil {
			s.log.Error("Summary fetch failed", "room", roomID, "err", err)
			continue
		}
		if !latest.Success || latest.Data == nil {
			// "Not found" is a valid answer: the summary simply has not
			// been computed yet.
			s.log.Debug("No summary available", "room", roomID)
			continue
		}

		s.setSummary(roomID, toSummary(*latest.Data, time.Now()))
	}
	s.log.Info("Chat summaries synchronized")
	return nil
}

// setSummary applies a summary to the room's current state. Applying
// per-room rather than replacing the whole snapshot keeps an overlapping
// sync from being clobbered by a stale summaries pass.
func (s *Store) setSummary(roomID domain.RoomID, summary domain.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rooms[roomID]
	if !ok {
		return
	}
	next := existing.Clone()
	next.Summary = &summary
	s.rooms[roomID] = next
}

func toMessage(entry contract.TranscriptEntry) domain.Message {
	return domain.Message{
		ID:              strconv.FormatInt(entry.ID, 10),
		Text:            entry.Content,
		IsUser:          entry.SenderType == contract.SenderTypeUser,
		Timestamp:       parseTimestamp(entry.Timestamp, time.Now()),
		ProfileImageURL: entry.ProfileImageURL,
		Emotion:         entry.Emotion,
	}
}

func toSummary(record contract.SummaryRecord, now time.Time) domain.Summary {
	return domain.Summary{
		SummaryText:  record.SummaryText,
		Score:        record.Score,
		CorePoints:   record.CorePoints,
		Improvements: record.Improvements,
		Tips:         record.Tips,
		Timestamp:    parseTimestamp(record.Timestamp, now),
	}
}

// parseTimestamp accepts the formats the backend is known to emit and
// falls back to the fallback instant for anything else.
func parseTimestamp(raw string, fallback time.Time) int64 {
	if raw == "" {
		return fallback.UnixMilli()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UnixMilli()
		}
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ms
	}
	return fallback.UnixMilli()
}
