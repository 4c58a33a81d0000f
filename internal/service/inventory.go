package service

import (
	"context"
	"errors"

	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/logging"
	"github.com/ericogr/fight-tracker/internal/storage"
	"github.com/ericogr/fight-tracker/internal/tracker"
)

type InventoryService struct {
	repo InventoryRepo
}

func NewInventoryService(repo InventoryRepo) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) List(ctx context.Context) ([]tracker.InventoryItem, error) {
	return s.repo.ListInventoryItems(ctx)
}

func (s *InventoryService) Create(ctx context.Context, in tracker.InventoryInput) (*tracker.InventoryItem, error) {
	if _, _, _, ok := in.Normalize(); !ok {
		return nil, ErrItemNameRequired
	}
	item, err := s.repo.CreateInventoryItem(ctx, in)
	if err != nil {
		return nil, mapInventoryErr(err)
	}
	logging.Info("inventory item created", logging.Fields{constants.LogFieldItemID: item.ID})
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, id uint, in tracker.InventoryInput) (*tracker.InventoryItem, error) {
	if _, _, _, ok := in.Normalize(); !ok {
		return nil, ErrItemNameRequired
	}
	item, err := s.repo.UpdateInventoryItem(ctx, id, in)
	if err != nil {
		return nil, mapInventoryErr(err)
	}
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteInventoryItem(ctx, id); err != nil {
		return mapInventoryErr(err)
	}
	logging.Info("inventory item deleted", logging.Fields{constants.LogFieldItemID: id})
	return nil
}

func mapInventoryErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrItemNotFound
	case errors.Is(err, storage.ErrNameRequired):
		return ErrItemNameRequired
	default:
		return err
	}
}
