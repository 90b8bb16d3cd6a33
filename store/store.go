// Package store owns the client-side chat state: every persona-backed chat
// room, its messages and its transcript summary. It reconciles that state
// against the remote directory and transcript services and exposes
// idempotent mutations to the UI layer.
//
// All mutations go through a read-compute-replace sequence under the store
// mutex; published rooms are never mutated in place, so readers always get
// a tear-free snapshot.
package store

import (
	"log/slog"
	"sync"

	"persona-chat/contract"
	"persona-chat/domain"
	"persona-chat/observability"
)

type Store struct {
	mu       sync.RWMutex
	log      *slog.Logger
	personas contract.PersonaDirectory
	chats    contract.TranscriptService
	progress *observability.Progress
	rooms    map[domain.RoomID]domain.ChatRoom

	syncFlight      flight
	summariesFlight flight
}

func NewStore(
	log *slog.Logger,
	personas contract.PersonaDirectory,
	chats contract.TranscriptService,
	progress *observability.Progress,
) *Store {
	return &Store{
		log:      log,
		personas: personas,
		chats:    chats,
		progress: progress,
		rooms:    make(map[domain.RoomID]domain.ChatRoom),
	}
}

// Rooms returns a snapshot of the whole room collection. The snapshot is
// detached from the store; later mutations never show through it.
func (s *Store) Rooms() map[domain.RoomID]domain.ChatRoom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[domain.RoomID]domain.ChatRoom, len(s.rooms))
	for id, room := range s.rooms {
		out[id] = room.Clone()
	}
	return out
}

// Room returns a snapshot of one room.
func (s *Store) Room(id domain.RoomID) (domain.ChatRoom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return domain.ChatRoom{}, false
	}
	return room.Clone(), true
}

// SendMessage appends message to the room's sequence, preserving every
// other field. A missing room is created on the fly with an empty persona
// binding. This is the only path through which new messages enter history;
// it never touches the network and always succeeds.
func (s *Store) SendMessage(roomID domain.RoomID, message domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rooms[roomID]
	if !ok {
		// No name: a later sync must be able to adopt the directory's
		// name for a room that only ever saw local echoes.
		existing = domain.ChatRoom{
			ID:       roomID,
			DISCType: domain.DefaultDISCType,
		}
	}

	next := existing.Clone()
	next.Messages = append(next.Messages, message)
	s.rooms[roomID] = next
}

// CreateRoomIfNotExists is an idempotent upsert. For an existing room,
// non-empty personaID and discType overwrite; personaName is overwritten
// only when explicitly supplied (nil means "leave as is"), so a known name
// can never silently regress to the placeholder. A new room defaults
// discType to D and personaName to the placeholder only when not supplied.
func (s *Store) CreateRoomIfNotExists(
	roomID domain.RoomID,
	personaID domain.PersonaID,
	discType domain.DISCType,
	personaName *string,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.rooms[roomID]; ok {
		next := existing.Clone()
		if personaID != "" {
			next.PersonaID = personaID
		}
		if discType != "" {
			next.DISCType = discType
		}
		if personaName != nil {
			next.PersonaName = *personaName
		}
		s.rooms[roomID] = next
		return
	}

	room := domain.ChatRoom{
		ID:          roomID,
		PersonaID:   personaID,
		DISCType:    discType,
		PersonaName: domain.PlaceholderName,
	}
	if room.DISCType == "" {
		room.DISCType = domain.DefaultDISCType
	}
	if personaName != nil {
		room.PersonaName = *personaName
	}
	s.rooms[roomID] = room
}

// ClearMessages empties the room's message sequence; no-op for an unknown
// room. Used before a full history reload to avoid duplicate accumulation.
func (s *Store) ClearMessages(roomID domain.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rooms[roomID]
	if !ok {
		return
	}
	next := existing.Clone()
	next.Messages = nil
	s.rooms[roomID] = next
}

// UpdateMessage replaces the message with the given id in place, keeping
// its position in the sequence. This is how a "loading" placeholder turns
// into the final assistant reply. No-op if room or message is absent.
func (s *Store) UpdateMessage(roomID domain.RoomID, messageID string, updated domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rooms[roomID]
	if !ok {
		return
	}
	next := existing.Clone()
	for i := range next.Messages {
		if next.Messages[i].ID == messageID {
			next.Messages[i] = updated
		}
	}
	s.rooms[roomID] = next
}

// RemoveMessage drops the message with the given id; no-op if room or
// message is absent.
func (s *Store) RemoveMessage(roomID domain.RoomID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rooms[roomID]
	if !ok {
		return
	}
	next := existing.Clone()
	kept := next.Messages[:0]
	for _, msg := range next.Messages {
		if msg.ID != messageID {
			kept = append(kept, msg)
		}
	}
	next.Messages = kept
	s.rooms[roomID] = next
}

// RemoveChatRoom removes the room locally without any remote call. It is
// the low-level primitive behind confirmed persona deletion.
func (s *Store) RemoveChatRoom(roomID domain.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
}

// snapshotLocked must not be called without at least a read lock held.
func (s *Store) snapshotLocked() map[domain.RoomID]domain.ChatRoom {
	out := make(map[domain.RoomID]domain.ChatRoom, len(s.rooms))
	for id, room := range s.rooms {
		out[id] = room
	}
	return out
}

func (s *Store) snapshot() map[domain.RoomID]domain.ChatRoom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}
