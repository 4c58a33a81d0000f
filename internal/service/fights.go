package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/engine"
	"github.com/ericogr/fight-tracker/internal/logging"
	"github.com/ericogr/fight-tracker/internal/storage"
	"github.com/ericogr/fight-tracker/internal/tracker"
)

// FightService covers the fight lifecycle. Combat state changes go through
// the FightSession returned by Session.
type FightService struct {
	repo     FightRepo
	sessions *Sessions

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewFightService builds the service. rng drives mock fight generation; a
// nil rng is seeded from the clock.
func NewFightService(repo FightRepo, sessions *Sessions, rng *rand.Rand) *FightService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FightService{repo: repo, sessions: sessions, rng: rng}
}

func (s *FightService) List(ctx context.Context) ([]tracker.FightSummary, error) {
	return s.repo.ListFights(ctx)
}

func (s *FightService) Create(ctx context.Context, name string) (*FightSession, error) {
	f, err := s.repo.CreateFight(ctx, name)
	if err != nil {
		return nil, err
	}
	logging.Info("fight created", logging.Fields{constants.LogFieldFightID: f.ID})
	return s.sessions.Get(ctx, f.ID)
}

// Session returns the live session of a fight.
func (s *FightService) Session(ctx context.Context, id uint) (*FightSession, error) {
	return s.sessions.Get(ctx, id)
}

func (s *FightService) Rename(ctx context.Context, id uint, name string) (*tracker.Fight, error) {
	f, err := s.repo.UpdateFightName(ctx, id, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrFightNotFound
		}
		return nil, err
	}
	if fs := s.sessions.lookup(id); fs != nil {
		fs.rename(f.Name)
	}
	return f, nil
}

// Delete removes the fight and its log permanently.
func (s *FightService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteFight(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrFightNotFound
		}
		return err
	}
	s.sessions.Evict(id)
	logging.Info("fight deleted", logging.Fields{constants.LogFieldFightID: id})
	return nil
}

var mockNames = []string{
	"Aelar", "Aeris", "Alaric", "Althea", "Amara", "Arden", "Aric", "Brenna",
	"Bram", "Caelan", "Cassia", "Cedric", "Daria", "Doran", "Eira", "Elowen",
	"Ember", "Eamon", "Fiona", "Galen", "Garrick", "Hale", "Helena", "Isla",
	"Ivor", "Jora", "Kael", "Kara", "Kieran", "Liora", "Lys", "Maeve",
	"Magnus", "Mira", "Nessa", "Nolan", "Orin", "Perrin", "Quinn", "Rhea",
	"Rowan", "Sable", "Seren", "Sylas", "Tamsin", "Thorne", "Tova", "Vera",
	"Wren", "Zarek",
}

var mockConditions = []string{"normal", "rooted", "stunned", "knocked", "silenced"}

const mockCombatants = 5

// CreateMockFight creates a practice fight with five random combatants.
func (s *FightService) CreateMockFight(ctx context.Context) (*FightSession, error) {
	existing, err := s.repo.ListFights(ctx)
	if err != nil {
		return nil, err
	}
	f, err := s.repo.CreateFight(ctx, "Mock Fight "+strconv.Itoa(len(existing)+1))
	if err != nil {
		return nil, err
	}

	state := tracker.NewFightState()
	state.DeathSaves = f.DeathSaves
	state.Rows = s.mockRows()
	state.CurrentAttackerID, _ = engine.AutoAdvance(state.Rows, nil, 0)
	if err := s.repo.SaveFightState(ctx, f.ID, state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	logging.Info("mock fight created", logging.Fields{constants.LogFieldFightID: f.ID})
	return s.sessions.Get(ctx, f.ID)
}

func (s *FightService) mockRows() []tracker.Row {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	picks := s.rng.Perm(len(mockNames))[:mockCombatants]
	rows := make([]tracker.Row, 0, mockCombatants)
	for _, p := range picks {
		hp := s.rng.Intn(11) + 15
		initiative := s.rng.Intn(27) - 1
		condition := mockConditions[0]
		if s.rng.Float64() >= 0.8 {
			condition = mockConditions[1+s.rng.Intn(len(mockConditions)-1)]
		}
		rows = append(rows, tracker.Row{
			ID:         tracker.NewRowID(),
			Initiative: strconv.Itoa(initiative),
			Combatant:  mockNames[p],
			HP:         strconv.Itoa(hp),
			Conditions: condition,
		})
	}
	return rows
}
