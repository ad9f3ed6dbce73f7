package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/apperr"
	"github.com/tweet-discussion-api/internal/mapper"
	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
)

// creatorService is the concrete implementation of CreatorService
type creatorService struct {
	creators repository.CreatorRepository
	log      zerolog.Logger
}

func newCreatorService(creators repository.CreatorRepository, log zerolog.Logger) *creatorService {
	return &creatorService{
		creators: creators,
		log:      log.With().Str("service", "creator").Logger(),
	}
}

// Create stores a new creator with a unique login
func (s *creatorService) Create(ctx context.Context, dto *models.CreatorDTO) (*models.CreatorDTO, error) {
	taken, err := s.creators.LoginExists(ctx, dto.Login)
	if err != nil {
		return nil, s.fail("check login", err)
	}
	if taken {
		return nil, apperr.Conflict(models.EntityCreator, "login")
	}

	creator := mapper.CreatorToEntity(dto)
	creator.ID = 0
	if err := s.creators.Save(ctx, creator); err != nil {
		return nil, s.fail("create", err)
	}

	s.log.Info().Int64("creator_id", creator.ID).Str("login", creator.Login).Msg("Creator created")
	return mapper.CreatorToDTO(creator), nil
}

func (s *creatorService) GetOne(ctx context.Context, id int64) (*models.CreatorDTO, error) {
	creator, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapper.CreatorToDTO(creator), nil
}

func (s *creatorService) GetAll(ctx context.Context) ([]*models.CreatorDTO, error) {
	creators, err := s.creators.List(ctx)
	if err != nil {
		return nil, s.fail("list", err)
	}
	dtos := make([]*models.CreatorDTO, 0, len(creators))
	for _, c := range creators {
		dtos = append(dtos, mapper.CreatorToDTO(c))
	}
	return dtos, nil
}

// Update replaces the mutable fields. Keeping one's own login is allowed;
// taking another creator's is a conflict.
func (s *creatorService) Update(ctx context.Context, dto *models.CreatorDTO) (*models.CreatorDTO, error) {
	creator, err := s.find(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	if dto.Login != creator.Login {
		holder, err := s.creators.GetByLogin(ctx, dto.Login)
		if err != nil {
			return nil, s.fail("check login", err)
		}
		if holder != nil && holder.ID != creator.ID {
			return nil, apperr.Conflict(models.EntityCreator, "login")
		}
	}

	creator.Login = dto.Login
	creator.Password = dto.Password
	creator.Firstname = dto.Firstname
	creator.Lastname = dto.Lastname
	if err := s.creators.Save(ctx, creator); err != nil {
		return nil, s.fail("update", err)
	}
	return mapper.CreatorToDTO(creator), nil
}

func (s *creatorService) Delete(ctx context.Context, id int64) error {
	exists, err := s.creators.Exists(ctx, id)
	if err != nil {
		return s.fail("check", err)
	}
	if !exists {
		return apperr.NotFound(models.EntityCreator)
	}
	if err := s.creators.Delete(ctx, id); err != nil {
		return s.fail("delete", err)
	}
	s.log.Info().Int64("creator_id", id).Msg("Creator deleted")
	return nil
}

func (s *creatorService) find(ctx context.Context, id int64) (*models.Creator, error) {
	creator, err := s.creators.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("get", err)
	}
	if creator == nil {
		return nil, apperr.NotFound(models.EntityCreator)
	}
	return creator, nil
}

func (s *creatorService) fail(op string, err error) error {
	return storageError(s.log, op, models.EntityCreator, "login", err)
}
