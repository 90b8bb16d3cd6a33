package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"persona-chat/auth"
	"persona-chat/contract"
	"persona-chat/domain"
	"persona-chat/store"
)

type IPersonaService interface {
	Create(ctx context.Context, req contract.CreatePersonaRequest) (domain.Persona, error)
}

// PersonaService creates personas and binds their rooms locally, so the
// chosen name is known to the client before the directory catches up.
type PersonaService struct {
	log       *slog.Logger
	store     *store.Store
	directory contract.PersonaDirectory
}

func NewPersonaService(log *slog.Logger, chatStore *store.Store, directory contract.PersonaDirectory) *PersonaService {
	return &PersonaService{log: log, store: chatStore, directory: directory}
}

// Create validates the payload, registers the persona remotely and creates
// its room with the supplied name. The local name survives a later
// directory sync through the store's merge-preserve rule.
func (s *PersonaService) Create(ctx context.Context, req contract.CreatePersonaRequest) (domain.Persona, error) {
	if err := auth.ValidatePersona(req); err != nil {
		return domain.Persona{}, err
	}

	result, err := s.directory.CreatePersona(ctx, req)
	if err != nil {
		return domain.Persona{}, fmt.Errorf("create persona: %w", err)
	}
	if !result.Success {
		return domain.Persona{}, fmt.Errorf("create persona: remote failure (%s)", result.Error.String())
	}

	persona := domain.Persona{
		ID:              domain.PersonaID(strconv.FormatInt(result.Data.ID, 10)),
		Name:            result.Data.Name,
		DISCType:        domain.ParseDISCType(result.Data.DiscType),
		Age:             result.Data.Age,
		Gender:          result.Data.Gender,
		ProfileImageURL: result.Data.ProfileImageURL,
	}
	if persona.Name == "" {
		// The server may echo the record without a name; what the user
		// typed is still authoritative locally.
		persona.Name = req.Name
	}

	s.store.CreateRoomIfNotExists(domain.RoomIDFor(persona.ID), persona.ID, persona.DISCType, &persona.Name)
	s.log.Info("Persona created", "persona", persona.ID, "disc", persona.DISCType)
	return persona, nil
}
