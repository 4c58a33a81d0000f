package service

import (
	"context"
	"sync"
	"time"

	"github.com/ericogr/fight-tracker/internal/storage"
	"github.com/ericogr/fight-tracker/internal/tracker"
)

type mockFightRepo struct {
	mu       sync.Mutex
	nextID   uint
	fights   map[uint]*tracker.Fight
	saves    []tracker.FightState
	getCalls int
	saveErr  error
}

func newMockFightRepo() *mockFightRepo {
	return &mockFightRepo{nextID: 1, fights: map[uint]*tracker.Fight{}}
}

func (m *mockFightRepo) add(name string, rows []tracker.Row) *tracker.Fight {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := &tracker.Fight{ID: m.nextID, Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.ApplyState(tracker.NewFightState())
	f.Rows = rows
	m.fights[f.ID] = f
	m.nextID++
	return f
}

func (m *mockFightRepo) GetFight(_ context.Context, id uint) (*tracker.Fight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	f, ok := m.fights[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *mockFightRepo) SaveFightState(_ context.Context, id uint, state tracker.FightState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	f, ok := m.fights[id]
	if !ok {
		return storage.ErrNotFound
	}
	f.ApplyState(state)
	m.saves = append(m.saves, state)
	return nil
}

func (m *mockFightRepo) ListFights(_ context.Context) ([]tracker.FightSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []tracker.FightSummary{}
	for id := m.nextID; id > 0; id-- {
		if f, ok := m.fights[id]; ok {
			out = append(out, tracker.FightSummary{ID: f.ID, Name: f.Name})
		}
	}
	return out, nil
}

func (m *mockFightRepo) CreateFight(_ context.Context, name string) (*tracker.Fight, error) {
	f := m.add(tracker.FightName(name), []tracker.Row{})
	cp := *f
	return &cp, nil
}

func (m *mockFightRepo) DeleteFight(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.fights[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.fights, id)
	return nil
}

func (m *mockFightRepo) UpdateFightName(_ context.Context, id uint, name string) (*tracker.Fight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.fights[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	f.Name = tracker.RenamedFightName(name)
	cp := *f
	return &cp, nil
}

func (m *mockFightRepo) lastSave() tracker.FightState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[len(m.saves)-1]
}

func (m *mockFightRepo) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

func storageNotFound() error { return storage.ErrNotFound }
