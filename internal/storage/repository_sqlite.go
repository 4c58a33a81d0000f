package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ericogr/fight-tracker/internal/tracker"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) ListFights(ctx context.Context) ([]tracker.FightSummary, error) {
	out := []tracker.FightSummary{}
	err := r.db.WithContext(ctx).
		Model(&tracker.Fight{}).
		Select("id", "name", "created_at", "updated_at").
		Order("id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqliteRepository) GetFight(ctx context.Context, id uint) (*tracker.Fight, error) {
	var f tracker.Fight
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	normalizeFight(&f)
	return &f, nil
}

func (r *sqliteRepository) CreateFight(ctx context.Context, name string) (*tracker.Fight, error) {
	f := tracker.Fight{Name: tracker.FightName(name)}
	f.ApplyState(tracker.NewFightState())
	if err := r.db.WithContext(ctx).Create(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *sqliteRepository) SaveFightState(ctx context.Context, id uint, state tracker.FightState) error {
	state = state.Normalized()
	row := tracker.Fight{UpdatedAt: time.Now()}
	row.ApplyState(state)
	// Select forces every column of the tuple to be written, including the
	// zero round and a nil attacker, which Updates would otherwise skip.
	res := r.db.WithContext(ctx).
		Model(&tracker.Fight{ID: id}).
		Select("rows_json", "death_saves_json", "current_attacker_id", "round", "log_json", "updated_at").
		Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) DeleteFight(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&tracker.Fight{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) UpdateFightName(ctx context.Context, id uint, name string) (*tracker.Fight, error) {
	res := r.db.WithContext(ctx).
		Model(&tracker.Fight{ID: id}).
		Updates(map[string]any{"name": tracker.RenamedFightName(name), "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetFight(ctx, id)
}

func (r *sqliteRepository) ListInventoryItems(ctx context.Context) ([]tracker.InventoryItem, error) {
	out := []tracker.InventoryItem{}
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqliteRepository) CreateInventoryItem(ctx context.Context, in tracker.InventoryInput) (*tracker.InventoryItem, error) {
	name, origin, price, ok := in.Normalize()
	if !ok {
		return nil, ErrNameRequired
	}
	item := tracker.InventoryItem{Name: name, Origin: origin, EstimatedPrice: price}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *sqliteRepository) UpdateInventoryItem(ctx context.Context, id uint, in tracker.InventoryInput) (*tracker.InventoryItem, error) {
	name, origin, price, ok := in.Normalize()
	if !ok {
		return nil, ErrNameRequired
	}
	res := r.db.WithContext(ctx).
		Model(&tracker.InventoryItem{ID: id}).
		Select("name", "origin", "estimated_price").
		Updates(&tracker.InventoryItem{Name: name, Origin: origin, EstimatedPrice: price})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var item tracker.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *sqliteRepository) DeleteInventoryItem(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&tracker.InventoryItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// normalizeFight fills nil collections and assigns IDs to rows that were
// stored without one.
func normalizeFight(f *tracker.Fight) {
	s := f.State().Normalized()
	tracker.EnsureRowIDs(s.Rows)
	for i := range s.Log {
		tracker.EnsureRowIDs(s.Log[i].Rows)
	}
	f.ApplyState(s)
}
