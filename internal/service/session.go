package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/engine"
	"github.com/ericogr/fight-tracker/internal/logging"
	"github.com/ericogr/fight-tracker/internal/storage"
	"github.com/ericogr/fight-tracker/internal/tracker"
)

// AttackRequest is the operator input for one attack. A blank AttackerID
// uses the current attacker and a blank TargetID uses the default target.
type AttackRequest struct {
	AttackerID        string `json:"attacker_id"`
	TargetID          string `json:"target_id"`
	Damage            string `json:"damage"`
	AttackerCondition string `json:"attacker_condition"`
	TargetCondition   string `json:"target_condition"`
}

// FightSession owns the live state of one fight. Every mutation updates
// memory first, runs the auto-advance rule, then writes the complete state.
type FightSession struct {
	repo FightStateRepo

	mu    sync.Mutex
	fight tracker.Fight
	// historyIndex is set while the operator is looking at a log entry.
	historyIndex *int
	// defaultTargetID preselects the target of the next attack.
	defaultTargetID *string
	// pending is the last state whose write failed.
	pending *tracker.FightState
}

func newFightSession(repo FightStateRepo, f *tracker.Fight) *FightSession {
	return &FightSession{repo: repo, fight: *f}
}

// ID returns the fight id.
func (s *FightSession) ID() uint { return s.fight.ID }

// View returns a snapshot of the session for display.
func (s *FightSession) View() FightView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *FightSession) viewLocked() FightView {
	f := &s.fight
	v := FightView{
		ID:                   f.ID,
		Name:                 f.Name,
		CreatedAt:            f.CreatedAt,
		UpdatedAt:            f.UpdatedAt,
		Rows:                 tracker.CloneRows(f.Rows),
		TurnOrder:            engine.TurnOrder(f.Rows),
		LiveTurnOrder:        engine.LiveTurnOrder(f.Rows),
		Alive:                engine.AliveIndices(f.Rows),
		CurrentAttackerID:    copyString(f.CurrentAttackerID),
		CurrentAttackerIndex: f.CurrentAttackerIndex(),
		DefaultTargetID:      copyString(s.defaultTargetID),
		Round:                f.Round,
		DeathSaves:           f.DeathSaves,
		LogLength:            len(f.Log),
		PendingWrite:         s.pending != nil,
	}
	if s.historyIndex != nil {
		idx := *s.historyIndex
		v.HistoryIndex = &idx
		if snap, err := engine.Snapshot(f.Log, idx); err == nil {
			v.History = &snap
		}
	}
	return v
}

// LogEntry returns the read-only snapshot of log entry k. It does not
// change the session mode.
func (s *FightSession) LogEntry(k int) (engine.HistorySnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := engine.Snapshot(s.fight.Log, k)
	if err != nil {
		return engine.HistorySnapshot{}, fmt.Errorf("%w: %d", ErrLogEntryNotFound, k)
	}
	return snap, nil
}

// ViewHistory switches the session into read-only history mode at entry k.
func (s *FightSession) ViewHistory(k int) (FightView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := engine.Snapshot(s.fight.Log, k); err != nil {
		return FightView{}, fmt.Errorf("%w: %d", ErrLogEntryNotFound, k)
	}
	s.historyIndex = &k
	return s.viewLocked(), nil
}

// ReturnToLive leaves history mode. It is a no-op when already live.
func (s *FightSession) ReturnToLive() FightView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyIndex = nil
	return s.viewLocked()
}

// ApplyAttack resolves an attack. applied is false, and nothing is written,
// when the attack does not satisfy the engine's preconditions.
func (s *FightSession) ApplyAttack(ctx context.Context, req AttackRequest) (view FightView, applied bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLive(); err != nil {
		return FightView{}, false, err
	}

	attackerID := strings.TrimSpace(req.AttackerID)
	if attackerID == "" && s.fight.CurrentAttackerID != nil {
		attackerID = *s.fight.CurrentAttackerID
	}
	targetID := strings.TrimSpace(req.TargetID)
	if targetID == "" && s.defaultTargetID != nil {
		targetID = *s.defaultTargetID
	}

	res, ok := engine.ApplyAttack(engine.AttackInput{
		Rows:              s.fight.Rows,
		AttackerID:        attackerID,
		TargetID:          targetID,
		DamageText:        req.Damage,
		AttackerCondition: req.AttackerCondition,
		TargetCondition:   req.TargetCondition,
		Round:             s.fight.Round,
	})
	if !ok {
		logging.Debug("attack rejected", logging.Fields{
			constants.LogFieldFightID:  s.fight.ID,
			constants.LogFieldAttacker: attackerID,
			constants.LogFieldTarget:   targetID,
		})
		return s.viewLocked(), false, nil
	}

	next := s.fight.State()
	next.Rows = res.Rows
	next.CurrentAttackerID = res.NextAttackerID
	next.Round = res.Round
	next.Log = appendLog(s.fight.Log, res.Entry)

	// The one who just attacked is the natural target of the reply.
	prev := attackerID
	s.defaultTargetID = &prev

	err = s.commit(ctx, "attack", next)
	logging.Info("attack applied", logging.Fields{
		constants.LogFieldFightID:  s.fight.ID,
		constants.LogFieldAttacker: attackerID,
		constants.LogFieldTarget:   targetID,
		constants.LogFieldRound:    s.fight.Round,
	})
	return s.viewLocked(), true, err
}

// AddRow appends a combatant and returns it with its assigned ID.
func (s *FightSession) AddRow(ctx context.Context, row tracker.Row) (tracker.Row, FightView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLive(); err != nil {
		return tracker.Row{}, FightView{}, err
	}
	if len(s.fight.Rows) >= tracker.MaxRows {
		return tracker.Row{}, FightView{}, ErrTooManyRows
	}
	if row.IsBlank() {
		return tracker.Row{}, FightView{}, ErrEmptyRow
	}
	row.ID = tracker.NewRowID()

	next := s.fight.State()
	next.Rows = append(tracker.CloneRows(s.fight.Rows), row)
	err := s.commit(ctx, "add_row", next)
	return row, s.viewLocked(), err
}

// UpdateRow replaces the editable fields of the row with the given ID.
func (s *FightSession) UpdateRow(ctx context.Context, id string, row tracker.Row) (FightView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLive(); err != nil {
		return FightView{}, err
	}
	idx := tracker.IndexOfRow(s.fight.Rows, id)
	if idx < 0 {
		return FightView{}, ErrRowNotFound
	}
	row.ID = id

	next := s.fight.State()
	next.Rows = tracker.CloneRows(s.fight.Rows)
	next.Rows[idx] = row
	err := s.commit(ctx, "update_row", next)
	return s.viewLocked(), err
}

// DeleteRow removes a combatant. Other rows keep their identity, and the
// log is untouched because it stores its own row snapshots.
func (s *FightSession) DeleteRow(ctx context.Context, id string) (FightView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLive(); err != nil {
		return FightView{}, err
	}
	idx := tracker.IndexOfRow(s.fight.Rows, id)
	if idx < 0 {
		return FightView{}, ErrRowNotFound
	}
	if s.defaultTargetID != nil && *s.defaultTargetID == id {
		s.defaultTargetID = nil
	}

	next := s.fight.State()
	rows := make([]tracker.Row, 0, len(s.fight.Rows)-1)
	rows = append(rows, s.fight.Rows[:idx]...)
	next.Rows = append(rows, s.fight.Rows[idx+1:]...)
	err := s.commit(ctx, "delete_row", next)
	logging.Info("combatant removed", logging.Fields{constants.LogFieldFightID: s.fight.ID, constants.LogFieldRowID: id})
	return s.viewLocked(), err
}

// ResetRows clears every combatant and the death saves. The round and the
// log are kept.
func (s *FightSession) ResetRows(ctx context.Context) (FightView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLive(); err != nil {
		return FightView{}, err
	}
	s.defaultTargetID = nil

	next := s.fight.State()
	next.Rows = []tracker.Row{}
	next.DeathSaves = tracker.DefaultDeathSaves()
	next.CurrentAttackerID = nil
	err := s.commit(ctx, "reset", next)
	return s.viewLocked(), err
}

// SetAttacker makes the row with the given ID the active attacker. A nil
// id clears the selection.
func (s *FightSession) SetAttacker(ctx context.Context, id *string) (FightView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLive(); err != nil {
		return FightView{}, err
	}
	var attacker *string
	if id != nil {
		idx := tracker.IndexOfRow(s.fight.Rows, *id)
		if idx < 0 || !engine.IsAlive(s.fight.Rows[idx]) {
			return FightView{}, ErrInvalidAttacker
		}
		a := *id
		attacker = &a
		if s.defaultTargetID != nil && *s.defaultTargetID == a {
			s.defaultTargetID = nil
		}
	}

	next := s.fight.State()
	next.CurrentAttackerID = attacker
	err := s.commit(ctx, "set_attacker", next)
	return s.viewLocked(), err
}

// ToggleDeathSave flips one circle on the death-saves sheet.
func (s *FightSession) ToggleDeathSave(ctx context.Context, role, kind string, index int) (FightView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLive(); err != nil {
		return FightView{}, err
	}
	saves, err := s.fight.DeathSaves.Toggle(role, kind, index)
	if err != nil {
		return FightView{}, fmt.Errorf("%w: %w", ErrInvalidDeathSave, err)
	}

	next := s.fight.State()
	next.DeathSaves = saves
	err = s.commit(ctx, "death_save", next)
	return s.viewLocked(), err
}

// Retry resends the payload of the last failed write unchanged.
func (s *FightSession) Retry(ctx context.Context) (FightView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return FightView{}, ErrNothingToRetry
	}
	err := s.persist(ctx, "retry", *s.pending)
	return s.viewLocked(), err
}

func (s *FightSession) rename(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fight.Name = name
}

func (s *FightSession) ensureLive() error {
	if s.historyIndex != nil {
		return ErrHistoryReadOnly
	}
	return nil
}

// commit installs next as the live state, applies auto-advance and writes
// the identical state. A failed write leaves memory as is.
func (s *FightSession) commit(ctx context.Context, op string, next tracker.FightState) error {
	if attacker, changed := engine.AutoAdvance(next.Rows, next.CurrentAttackerID, next.Round); changed {
		next.CurrentAttackerID = attacker
	}
	next = next.Normalized()
	s.fight.ApplyState(next)
	return s.persist(ctx, op, next)
}

func (s *FightSession) persist(ctx context.Context, op string, state tracker.FightState) error {
	fields := logging.Fields{constants.LogFieldFightID: s.fight.ID, constants.LogFieldOp: op}
	if err := s.repo.SaveFightState(ctx, s.fight.ID, state); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.pending = nil
			return ErrFightNotFound
		}
		s.pending = &state
		logging.Error("failed to persist fight state", err, fields)
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	s.pending = nil
	s.fight.UpdatedAt = time.Now()
	logging.Debug("fight state persisted", fields)
	return nil
}

// reconcile runs auto-advance on a freshly loaded fight so a stored attacker
// who is already down is replaced before anyone sees it.
func (s *FightSession) reconcile(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := engine.AutoAdvance(s.fight.Rows, s.fight.CurrentAttackerID, s.fight.Round)
	if !changed {
		return
	}
	state := s.fight.State()
	state.CurrentAttackerID = next
	// The error is logged and the state stays pending for Retry.
	_ = s.commit(ctx, "reconcile", state)
}

func appendLog(log []tracker.LogEntry, e tracker.LogEntry) []tracker.LogEntry {
	out := make([]tracker.LogEntry, len(log), len(log)+1)
	copy(out, log)
	return append(out, e)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
