package service

import (
	"context"

	"github.com/ericogr/fight-tracker/internal/tracker"
)

// FightStateRepo is the storage a live fight session needs.
type FightStateRepo interface {
	GetFight(ctx context.Context, id uint) (*tracker.Fight, error)
	SaveFightState(ctx context.Context, id uint, state tracker.FightState) error
}

// FightRepo is the storage used for fight lifecycle operations.
type FightRepo interface {
	FightStateRepo
	ListFights(ctx context.Context) ([]tracker.FightSummary, error)
	CreateFight(ctx context.Context, name string) (*tracker.Fight, error)
	DeleteFight(ctx context.Context, id uint) error
	UpdateFightName(ctx context.Context, id uint, name string) (*tracker.Fight, error)
}

// InventoryRepo is the storage used by the inventory service.
type InventoryRepo interface {
	ListInventoryItems(ctx context.Context) ([]tracker.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, in tracker.InventoryInput) (*tracker.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id uint, in tracker.InventoryInput) (*tracker.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id uint) error
}
