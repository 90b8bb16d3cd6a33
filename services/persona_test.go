package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"persona-chat/contract"
	"persona-chat/domain"
	stderrors "persona-chat/errors"
	"persona-chat/mocks"
	"persona-chat/observability"
	"persona-chat/store"
)

type personaDeps struct {
	service   *PersonaService
	store     *store.Store
	directory *mocks.MockPersonaDirectory
}

func newPersonaService(t *testing.T) personaDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	directory := mocks.NewMockPersonaDirectory(ctrl)
	chats := mocks.NewMockTranscriptService(ctrl)
	chatStore := store.NewStore(log, directory, chats, observability.NewProgress(log))

	return personaDeps{
		service:   NewPersonaService(log, chatStore, directory),
		store:     chatStore,
		directory: directory,
	}
}

func TestPersonaService_Create(t *testing.T) {
	ctx := context.Background()
	request := contract.CreatePersonaRequest{Name: "Mina", DiscType: "I", Age: 24, Gender: "F"}

	t.Run("should register remotely and bind a room with the chosen name", func(t *testing.T) {
		req := require.New(t)
		deps := newPersonaService(t)

		deps.directory.EXPECT().CreatePersona(ctx, request).Return(contract.Ok(contract.PersonaRecord{
			ID: 7, Name: "Mina", DiscType: "I", Age: 24, Gender: "F",
		}), nil)

		persona, err := deps.service.Create(ctx, request)
		req.NoError(err)
		req.Equal(domain.PersonaID("7"), persona.ID)
		req.Equal(domain.DISCInfluence, persona.DISCType)

		room, ok := deps.store.Room("persona-7")
		req.True(ok)
		req.Equal("Mina", room.PersonaName)
		req.Equal(domain.DISCInfluence, room.DISCType)
	})

	t.Run("should fall back to the requested name when the echo omits it", func(t *testing.T) {
		req := require.New(t)
		deps := newPersonaService(t)

		deps.directory.EXPECT().CreatePersona(ctx, request).Return(contract.Ok(contract.PersonaRecord{
			ID: 8, DiscType: "I",
		}), nil)

		persona, err := deps.service.Create(ctx, request)
		req.NoError(err)
		req.Equal("Mina", persona.Name)

		room, _ := deps.store.Room("persona-8")
		req.Equal("Mina", room.PersonaName)
	})

	t.Run("should reject an invalid payload before touching the directory", func(t *testing.T) {
		req := require.New(t)
		deps := newPersonaService(t)

		_, err := deps.service.Create(ctx, contract.CreatePersonaRequest{Name: "Mina", DiscType: "X"})
		req.ErrorIs(err, stderrors.ErrInvalidRequest)
		req.Empty(deps.store.Rooms())
	})

	t.Run("should create nothing locally on a remote refusal", func(t *testing.T) {
		req := require.New(t)
		deps := newPersonaService(t)

		deps.directory.EXPECT().CreatePersona(ctx, request).Return(
			contract.Fail[contract.PersonaRecord](409, "name taken"), nil)

		_, err := deps.service.Create(ctx, request)
		req.Error(err)
		req.Empty(deps.store.Rooms())
	})

	t.Run("should create nothing locally on a transport error", func(t *testing.T) {
		req := require.New(t)
		deps := newPersonaService(t)

		deps.directory.EXPECT().CreatePersona(ctx, request).Return(
			contract.Result[contract.PersonaRecord]{}, fmt.Errorf("connection refused"))

		_, err := deps.service.Create(ctx, request)
		req.Error(err)
		req.Empty(deps.store.Rooms())
	})
}
