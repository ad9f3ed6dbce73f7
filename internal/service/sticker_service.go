package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/apperr"
	"github.com/tweet-discussion-api/internal/mapper"
	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
)

// stickerService is the concrete implementation of StickerService
type stickerService struct {
	stickers repository.StickerRepository
	log      zerolog.Logger
}

func newStickerService(stickers repository.StickerRepository, log zerolog.Logger) *stickerService {
	return &stickerService{
		stickers: stickers,
		log:      log.With().Str("service", "sticker").Logger(),
	}
}

func (s *stickerService) Create(ctx context.Context, dto *models.StickerDTO) (*models.StickerDTO, error) {
	taken, err := s.stickers.NameExists(ctx, dto.Name)
	if err != nil {
		return nil, s.fail("check name", err)
	}
	if taken {
		return nil, apperr.Conflict(models.EntitySticker, "name")
	}

	sticker := mapper.StickerToEntity(dto)
	sticker.ID = 0
	if err := s.stickers.Save(ctx, sticker); err != nil {
		return nil, s.fail("create", err)
	}
	return mapper.StickerToDTO(sticker), nil
}

func (s *stickerService) GetOne(ctx context.Context, id int64) (*models.StickerDTO, error) {
	sticker, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapper.StickerToDTO(sticker), nil
}

func (s *stickerService) GetAll(ctx context.Context) ([]*models.StickerDTO, error) {
	stickers, err := s.stickers.List(ctx)
	if err != nil {
		return nil, s.fail("list", err)
	}
	dtos := make([]*models.StickerDTO, 0, len(stickers))
	for _, st := range stickers {
		dtos = append(dtos, mapper.StickerToDTO(st))
	}
	return dtos, nil
}

func (s *stickerService) Update(ctx context.Context, dto *models.StickerDTO) (*models.StickerDTO, error) {
	sticker, err := s.find(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	if dto.Name != sticker.Name {
		holder, err := s.stickers.GetByName(ctx, dto.Name)
		if err != nil {
			return nil, s.fail("check name", err)
		}
		if holder != nil && holder.ID != sticker.ID {
			return nil, apperr.Conflict(models.EntitySticker, "name")
		}
	}

	sticker.Name = dto.Name
	if err := s.stickers.Save(ctx, sticker); err != nil {
		return nil, s.fail("update", err)
	}
	return mapper.StickerToDTO(sticker), nil
}

func (s *stickerService) Delete(ctx context.Context, id int64) error {
	exists, err := s.stickers.Exists(ctx, id)
	if err != nil {
		return s.fail("check", err)
	}
	if !exists {
		return apperr.NotFound(models.EntitySticker)
	}
	if err := s.stickers.Delete(ctx, id); err != nil {
		return s.fail("delete", err)
	}
	return nil
}

func (s *stickerService) find(ctx context.Context, id int64) (*models.Sticker, error) {
	sticker, err := s.stickers.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("get", err)
	}
	if sticker == nil {
		return nil, apperr.NotFound(models.EntitySticker)
	}
	return sticker, nil
}

func (s *stickerService) fail(op string, err error) error {
	return storageError(s.log, op, models.EntitySticker, "name", err)
}
