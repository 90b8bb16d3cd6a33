package e2e

import (
	"context"
	"fmt"
	"time"

	"testing"

	"github.com/stretchr/testify/suite"

	"persona-chat/contract"
	"persona-chat/domain"
	"persona-chat/observability"
	"persona-chat/services"
	"persona-chat/store"
)

type testChatFlowSuite struct {
	BaseSuite
}

func TestChatFlowSuite(t *testing.T) {
	suite.Run(t, &testChatFlowSuite{})
}

func (s *testChatFlowSuite) TestFullChatFlow() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := s.Client("Chat backend")
	chatStore := store.NewStore(s.Log, client, client, observability.NewProgress(s.Log))
	conversation := services.NewConversationService(s.Log, chatStore, client, nil)
	personas := services.NewPersonaService(s.Log, chatStore, client)

	var persona domain.Persona

	// --- STEP 0: AUTHENTICATE ---
	s.Run("Step 0: Login", func() {
		result, err := client.Login(ctx, s.Config.Email, s.Config.Password)
		s.Require().NoError(err)
		s.Require().True(result.Success, "Login refused: %s", result.Error.String())
		s.Require().True(client.Authenticated())
	})

	// --- STEP 1: CREATE A PERSONA ---
	s.Run("Step 1: Create persona and verify its room", func() {
		var err error
		persona, err = personas.Create(ctx, contract.CreatePersonaRequest{
			Name:     fmt.Sprintf("e2e-%d", time.Now().UnixMilli()),
			DiscType: "I",
		})
		s.Require().NoError(err)

		room, ok := chatStore.Room(domain.RoomIDFor(persona.ID))
		s.Require().True(ok)
		s.Require().Equal(persona.Name, room.PersonaName)
	})

	// --- STEP 2: ROUND-TRIP A MESSAGE ---
	s.Run("Step 2: Send a message and receive a reply", func() {
		roomID, err := conversation.OpenRoom(ctx, persona)
		s.Require().NoError(err)

		s.Require().NoError(conversation.Send(ctx, roomID, "hello from the e2e suite"))

		room, _ := chatStore.Room(roomID)
		s.Require().GreaterOrEqual(len(room.Messages), 2)
		last := room.Messages[len(room.Messages)-1]
		s.Require().False(last.IsUser, "Last message should be the persona's reply")
		s.Require().NotEqual("...", last.Text, "Loading placeholder should have been replaced")
	})

	// --- STEP 3: SYNC AGAINST THE DIRECTORY ---
	s.Run("Step 3: Full sync keeps the conversation", func() {
		s.Require().NoError(chatStore.SyncPersonasAndChats(ctx))

		room, ok := chatStore.Room(domain.RoomIDFor(persona.ID))
		s.Require().True(ok)
		s.Require().NotEmpty(room.Messages, "Synced transcript should contain the round-trip")
	})

	// --- STEP 4: SUMMARY ---
	s.Run("Step 4: Generate and fetch a summary", func() {
		result, err := chatStore.GenerateChatSummary(ctx, persona.ID)
		s.Require().NoError(err)
		s.Require().True(result.Success, "Summary refused: %s", result.Error.String())

		s.Require().NoError(chatStore.FetchChatSummaries(ctx))
		room, _ := chatStore.Room(domain.RoomIDFor(persona.ID))
		s.Require().NotNil(room.Summary)
	})

	// --- STEP 5: CLEANUP ---
	s.Run("Step 5: Delete the persona", func() {
		result, err := chatStore.DeletePersona(ctx, persona.ID)
		s.Require().NoError(err)
		s.Require().True(result.Success)

		_, ok := chatStore.Room(domain.RoomIDFor(persona.ID))
		s.Require().False(ok, "Room should be gone after a confirmed delete")
	})
}
