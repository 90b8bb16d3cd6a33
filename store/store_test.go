package store

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"persona-chat/domain"
	"persona-chat/mocks"
	"persona-chat/observability"
)

type testDeps struct {
	store    *Store
	personas *mocks.MockPersonaDirectory
	chats    *mocks.MockTranscriptService
	progress *observability.Progress
}

func newTestStore(t *testing.T) testDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	personas := mocks.NewMockPersonaDirectory(ctrl)
	chats := mocks.NewMockTranscriptService(ctrl)
	progress := observability.NewProgress(log)
	return testDeps{
		store:    NewStore(log, personas, chats, progress),
		personas: personas,
		chats:    chats,
		progress: progress,
	}
}

func TestStore_CreateRoomIfNotExists(t *testing.T) {
	t.Run("should create a room with exactly the supplied fields", func(t *testing.T) {
		req := require.New(t)
		deps := newTestStore(t)

		deps.store.CreateRoomIfNotExists("persona-7", "7", domain.DISCInfluence, lo.ToPtr("Mina"))

		room, ok := deps.store.Room("persona-7")
		req.True(ok)
		req.Equal(domain.RoomID("persona-7"), room.ID)
		req.Equal(domain.PersonaID("7"), room.PersonaID)
		req.Equal(domain.DISCInfluence, room.DISCType)
		req.Equal("Mina", room.PersonaName)
		req.Empty(room.Messages)
		req.Nil(room.Summary)
	})

	t.Run("should be idempotent for identical arguments", func(t *testing.T) {
		req := require.New(t)
		deps := newTestStore(t)

		deps.store.CreateRoomIfNotExists("persona-7", "7", domain.DISCInfluence, lo.ToPtr("Mina"))
		before, _ := deps.store.Room("persona-7")

		deps.store.CreateRoomIfNotExists("persona-7", "7", domain.DISCInfluence, lo.ToPtr("Mina"))
		after, _ := deps.store.Room("persona-7")

		req.Equal(before, after)
		req.Len(deps.store.Rooms(), 1)
	})

	t.Run("should never regress a known name when none is supplied", func(t *testing.T) {
		req := require.New(t)
		deps := newTestStore(t)

		deps.store.CreateRoomIfNotExists("persona-7", "7", domain.DISCDominance, lo.ToPtr("Alex"))
		deps.store.CreateRoomIfNotExists("persona-7", "7", domain.DISCDominance, nil)

		room, _ := deps.store.Room("persona-7")
		req.Equal("Alex", room.PersonaName)
	})

	t.Run("should default disc type and name when creating without them", func(t *testing.T) {
		req := require.New(t)
		deps := newTestStore(t)

		deps.store.CreateRoomIfNotExists("persona-9", "9", "", nil)

		room, _ := deps.store.Room("persona-9")
		req.Equal(domain.DefaultDISCType, room.DISCType)
		req.Equal(domain.PlaceholderName, room.PersonaName)
	})

	t.Run("should merge non-empty fields into an existing room", func(t *testing.T) {
		req := require.New(t)
		deps := newTestStore(t)

		deps.store.CreateRoomIfNotExists("persona-9", "", "", nil)
		deps.store.CreateRoomIfNotExists("persona-9", "9", domain.DISCSteadiness, nil)

		room, _ := deps.store.Room("persona-9")
		req.Equal(domain.PersonaID("9"), room.PersonaID)
		req.Equal(domain.DISCSteadiness, room.DISCType)
	})

	t.Run("should accept an explicitly supplied empty name", func(t *testing.T) {
		req := require.New(t)
		deps := newTestStore(t)

		// Supplying a value always wins, even an empty one; only absence
		// means "leave as is".
		deps.store.CreateRoomIfNotExists("persona-9", "9", "", lo.ToPtr(""))

		room, _ := deps.store.Room("persona-9")
		req.Equal("", room.PersonaName)
	})
}

func TestStore_SendMessage(t *testing.T) {
	t.Run("should append in arrival order and preserve room fields", func(t *testing.T) {
		req := require.New(t)
		deps := newTestStore(t)

		deps.store.CreateRoomIfNotExists("persona-1", "1", domain.DISCCompliance, lo.ToPtr("Mina"))
		deps.store.SendMessage("persona-1", domain.Message{ID: "10", Text: "hello", IsUser: true})
		deps.store.SendMessage("persona-1", domain.Message{ID: "11", Text: "hi there"})

		room, _ := deps.store.Room("persona-1")
		req.Len(room.Messages, 2)
		req.Equal("hello", room.Messages[0].Text)
		req.Equal("hi there", room.Messages[1].Text)
		req.Equal(domain.PersonaID("1"), room.PersonaID)
		req.Equal(domain.DISCCompliance, room.DISCType)
		req.Equal("Mina", room.PersonaName)
	})

	t.Run("should create a missing room with empty persona binding", func(t *testing.T) {
		req := require.New(t)
		deps := newTestStore(t)

		deps.store.SendMessage("ephemeral", domain.Message{ID: "1", Text: "hey"})

		room, ok := deps.store.Room("ephemeral")
		req.True(ok)
		req.Equal(domain.PersonaID(""), room.PersonaID)
		req.Equal(domain.DefaultDISCType, room.DISCType)
		req.Empty(room.PersonaName)
		req.Len(room.Messages, 1)
	})

	t.Run("should append rather than overwrite a duplicate id", func(t *testing.T) {
		req := require.New(t)
		deps := newTestStore(t)

		deps.store.SendMessage("persona-1", domain.Message{ID: "5", Text: "loading"})
		deps.store.SendMessage("persona-1", domain.Message{ID: "5", Text: "final"})

		room, _ := deps.store.Room("persona-1")
		req.Len(room.Messages, 2)
	})
}

func TestStore_UpdateAndRemoveMessage(t *testing.T) {
	t.Run("should replace in place without changing sequence length", func(t *testing.T) {
		req := require.New(t)
		deps := newTestStore(t)

		deps.store.SendMessage("persona-1", domain.Message{ID: "4", Text: "question", IsUser: true})
		deps.store.SendMessage("persona-1", domain.Message{ID: "5", Text: "loading"})

		deps.store.UpdateMessage("persona-1", "5", domain.Message{ID: "5", Text: "final", Emotion: "happy"})

		room, _ := deps.store.Room("persona-1")
		req.Len(room.Messages, 2)
		req.Equal("final", room.Messages[1].Text)
		req.Equal("happy", room.Messages[1].Emotion)
		req.Equal("question", room.Messages[0].Text)
	})

	t.Run("should remove by identity and no-op on unknown ids", func(t *testing.T) {
		req := require.New(t)
		deps := newTestStore(t)

		deps.store.SendMessage("persona-1", domain.Message{ID: "4", Text: "keep"})
		deps.store.SendMessage("persona-1", domain.Message{ID: "5", Text: "drop"})

		deps.store.RemoveMessage("persona-1", "5")
		deps.store.RemoveMessage("persona-1", "404")
		deps.store.RemoveMessage("no-such-room", "4")

		room, _ := deps.store.Room("persona-1")
		req.Len(room.Messages, 1)
		req.Equal("keep", room.Messages[0].Text)
	})
}

func TestStore_ClearMessages(t *testing.T) {
	req := require.New(t)
	deps := newTestStore(t)

	deps.store.CreateRoomIfNotExists("persona-1", "1", domain.DISCDominance, lo.ToPtr("Mina"))
	deps.store.SendMessage("persona-1", domain.Message{ID: "1", Text: "hello"})

	deps.store.ClearMessages("persona-1")
	deps.store.ClearMessages("no-such-room")

	room, _ := deps.store.Room("persona-1")
	req.Empty(room.Messages)
	// Clearing history never touches the binding.
	req.Equal("Mina", room.PersonaName)
}

func TestStore_RoomsSnapshotIsDetached(t *testing.T) {
	req := require.New(t)
	deps := newTestStore(t)

	deps.store.SendMessage("persona-1", domain.Message{ID: "1", Text: "hello"})
	snapshot := deps.store.Rooms()

	deps.store.SendMessage("persona-1", domain.Message{ID: "2", Text: "world"})
	deps.store.RemoveChatRoom("persona-1")

	req.Len(snapshot["persona-1"].Messages, 1)
	req.NotContains(deps.store.Rooms(), domain.RoomID("persona-1"))
}
