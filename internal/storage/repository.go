package storage

import (
	"context"
	"errors"

	"github.com/ericogr/fight-tracker/internal/tracker"
)

var (
	// ErrNotFound is returned when the requested fight or item does not
	// exist. It is a lookup result, not a storage fault.
	ErrNotFound = errors.New("not found")
	// ErrNameRequired is returned when an inventory item name is blank.
	ErrNameRequired = errors.New("name is required")
)

type Repository interface {
	ListFights(ctx context.Context) ([]tracker.FightSummary, error)
	GetFight(ctx context.Context, id uint) (*tracker.Fight, error)
	// CreateFight inserts a fight with no rows, default death saves and an
	// empty log. A blank name becomes tracker.DefaultFightName.
	CreateFight(ctx context.Context, name string) (*tracker.Fight, error)
	// SaveFightState overwrites the whole combat state of a fight in a
	// single write and refreshes updated_at.
	SaveFightState(ctx context.Context, id uint, state tracker.FightState) error
	DeleteFight(ctx context.Context, id uint) error
	UpdateFightName(ctx context.Context, id uint, name string) (*tracker.Fight, error)

	ListInventoryItems(ctx context.Context) ([]tracker.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, in tracker.InventoryInput) (*tracker.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id uint, in tracker.InventoryInput) (*tracker.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id uint) error

	Close() error
}
