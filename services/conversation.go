// Package services hosts the conversation flows the UI drives: opening a
// room, reloading its transcript and the optimistic send round-trip.
package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"persona-chat/contract"
	"persona-chat/domain"
	"persona-chat/store"
)

const (
	welcomeText     = "새로운 대화를 시작해보세요!"
	historyLostText = "채팅 기록을 불러오지 못했습니다. 새로운 대화를 시작해보세요."
	sendFailedText  = "메시지 전송 중 오류가 발생했습니다."
)

// TextFilter masks forbidden words in chat text. The conversation service
// applies it to everything it puts into a room.
type TextFilter interface {
	Mask(text string) string
}

// noFilter passes text through untouched.
type noFilter struct{}

func (noFilter) Mask(text string) string { return text }

type IConversationService interface {
	OpenRoom(ctx context.Context, persona domain.Persona) (domain.RoomID, error)
	Send(ctx context.Context, roomID domain.RoomID, text string) error
}

type ConversationService struct {
	log    *slog.Logger
	store  *store.Store
	chats  contract.TranscriptService
	filter TextFilter
	// now is swappable so tests can mint deterministic message ids.
	now func() time.Time
}

func NewConversationService(
	log *slog.Logger,
	chatStore *store.Store,
	chats contract.TranscriptService,
	filter TextFilter,
) *ConversationService {
	if filter == nil {
		filter = noFilter{}
	}
	return &ConversationService{
		log:    log,
		store:  chatStore,
		chats:  chats,
		filter: filter,
		now:    time.Now,
	}
}

// OpenRoom ensures the persona's room exists and reloads its transcript.
// An empty transcript or a refused load yields a locally minted opener
// message instead of a blank screen; a transport failure yields an error
// message in-room but still opens the room.
func (s *ConversationService) OpenRoom(ctx context.Context, persona domain.Persona) (domain.RoomID, error) {
	roomID := domain.RoomIDFor(persona.ID)

	var name *string
	if persona.Name != "" {
		name = &persona.Name
	}
	s.store.CreateRoomIfNotExists(roomID, persona.ID, persona.DISCType, name)

	personaID, ok := persona.ID.Numeric()
	if !ok {
		// An unbound room has no transcript to load.
		return roomID, nil
	}

	history, err := s.chats.GetHistory(ctx, personaID)
	if err != nil {
		s.log.Error("Transcript load failed", "room", roomID, "err", err)
		s.appendSystemMessage(roomID, historyLostText, persona.ProfileImageURL)
		return roomID, nil
	}
	// Reload from scratch so a reopen never duplicates history, welcome
	// message included.
	s.store.ClearMessages(roomID)
	if !history.Success || len(history.Data) == 0 {
		s.appendSystemMessage(roomID, welcomeText, persona.ProfileImageURL)
		return roomID, nil
	}

	for _, entry := range history.Data {
		message := transcriptMessage(entry, s.now())
		message.Text = s.filter.Mask(message.Text)
		s.store.SendMessage(roomID, message)
	}
	return roomID, nil
}

// Send performs the optimistic round-trip: echo the user's turn at once,
// append a loading placeholder with a stable id, then replace that
// placeholder in place with the assistant's reply or an error text. The
// user's echo is never rolled back.
func (s *ConversationService) Send(ctx context.Context, roomID domain.RoomID, text string) error {
	now := s.now()
	text = s.filter.Mask(text)

	s.store.SendMessage(roomID, domain.Message{
		ID:        domain.MintMessageID(now),
		Text:      text,
		IsUser:    true,
		Timestamp: now.UnixMilli(),
	})

	room, _ := s.store.Room(roomID)
	personaID, numeric := room.PersonaID.Numeric()
	if !numeric {
		// Unbound rooms stay local; there is no remote to answer.
		return nil
	}

	loadingID := domain.MintMessageID(now.Add(time.Millisecond))
	s.store.SendMessage(roomID, domain.Message{
		ID:        loadingID,
		Text:      "...",
		IsUser:    false,
		Timestamp: now.Add(time.Millisecond).UnixMilli(),
	})

	reply, err := s.chats.SendMessage(ctx, personaID, text)
	if err != nil {
		s.log.Error("Message send failed", "room", roomID, "err", err)
		s.replaceLoading(roomID, loadingID, sendFailedText, "", "")
		return err
	}
	if !reply.Success {
		s.log.Error("Message send refused", "room", roomID, "remote", reply.Error.String())
		s.replaceLoading(roomID, loadingID, sendFailedText, "", "")
		return nil
	}

	s.replaceLoading(roomID, loadingID,
		s.filter.Mask(reply.Data.Content), reply.Data.ProfileImageURL, reply.Data.Emotion)
	return nil
}

func (s *ConversationService) replaceLoading(roomID domain.RoomID, loadingID, text, profileImageURL, emotion string) {
	s.store.UpdateMessage(roomID, loadingID, domain.Message{
		ID:              loadingID,
		Text:            text,
		IsUser:          false,
		Timestamp:       s.now().UnixMilli(),
		ProfileImageURL: profileImageURL,
		Emotion:         emotion,
	})
}

func (s *ConversationService) appendSystemMessage(roomID domain.RoomID, text, profileImageURL string) {
	now := s.now()
	s.store.SendMessage(roomID, domain.Message{
		ID:              domain.MintMessageID(now),
		Text:            text,
		IsUser:          false,
		Timestamp:       now.UnixMilli(),
		ProfileImageURL: profileImageURL,
	})
}

func transcriptMessage(entry contract.TranscriptEntry, fallback time.Time) domain.Message {
	timestamp := fallback.UnixMilli()
	if entry.Timestamp != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
			if ts, err := time.Parse(layout, entry.Timestamp); err == nil {
				timestamp = ts.UnixMilli()
				break
			}
		}
	}
	return domain.Message{
		ID:              strconv.FormatInt(entry.ID, 10),
		Text:            entry.Content,
		IsUser:          entry.SenderType == contract.SenderTypeUser,
		Timestamp:       timestamp,
		ProfileImageURL: entry.ProfileImageURL,
		Emotion:         entry.Emotion,
	}
}
