package service

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/dedupe"
	"github.com/ericogr/fight-tracker/internal/logging"
	"github.com/ericogr/fight-tracker/internal/storage"
)

// Sessions keeps one FightSession per loaded fight. Concurrent first loads
// of the same fight are collapsed into a single storage read.
type Sessions struct {
	repo  FightStateRepo
	group *singleflight.Group

	mu       sync.Mutex
	sessions map[uint]*FightSession
}

func NewSessions(repo FightStateRepo) *Sessions {
	return &Sessions{
		repo:     repo,
		group:    &dedupe.SessionGroup,
		sessions: make(map[uint]*FightSession),
	}
}

// Get returns the live session for a fight, loading it from storage on
// first use.
func (s *Sessions) Get(ctx context.Context, id uint) (*FightSession, error) {
	if fs := s.lookup(id); fs != nil {
		return fs, nil
	}
	v, err, _ := s.group.Do(dedupe.FightKey(id), func() (any, error) {
		if fs := s.lookup(id); fs != nil {
			return fs, nil
		}
		f, err := s.repo.GetFight(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrFightNotFound
			}
			return nil, err
		}
		fs := newFightSession(s.repo, f)
		fs.reconcile(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if existing, ok := s.sessions[id]; ok {
			return existing, nil
		}
		s.sessions[id] = fs
		logging.Debug("fight session loaded", logging.Fields{constants.LogFieldFightID: id})
		return fs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*FightSession), nil
}

// Evict drops a cached session, for example after its fight was deleted.
func (s *Sessions) Evict(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Sessions) lookup(id uint) *FightSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}
