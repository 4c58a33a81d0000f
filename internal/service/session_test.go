package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/fight-tracker/internal/tracker"
)

func twoCombatants() []tracker.Row {
	return []tracker.Row{
		{ID: "a", Combatant: "Aldric", Initiative: "15", HP: "20"},
		{ID: "g", Combatant: "Groth", Initiative: "10", HP: "18"},
	}
}

func loadSession(t *testing.T, repo *mockFightRepo, rows []tracker.Row) *FightSession {
	t.Helper()
	f := repo.add("Ambush", rows)
	fs, err := NewSessions(repo).Get(context.Background(), f.ID)
	require.NoError(t, err)
	return fs
}

func TestSession_LoadPicksFirstAttacker(t *testing.T) {
	repo := newMockFightRepo()
	fs := loadSession(t, repo, twoCombatants())

	v := fs.View()
	require.NotNil(t, v.CurrentAttackerID)
	assert.Equal(t, "a", *v.CurrentAttackerID)
	require.NotNil(t, v.CurrentAttackerIndex)
	assert.Equal(t, 0, *v.CurrentAttackerIndex)
	assert.Equal(t, []int{0, 1}, v.TurnOrder)
	assert.Equal(t, 1, repo.saveCount())
}

func TestSession_AttackSequence(t *testing.T) {
	ctx := context.Background()
	repo := newMockFightRepo()
	fs := loadSession(t, repo, twoCombatants())

	v, applied, err := fs.ApplyAttack(ctx, AttackRequest{TargetID: "g", Damage: "6"})
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, "12", v.Rows[1].HP)
	assert.Equal(t, "g", *v.CurrentAttackerID)
	assert.Equal(t, 0, v.Round)
	assert.Equal(t, 1, v.LogLength)
	require.NotNil(t, v.DefaultTargetID)
	assert.Equal(t, "a", *v.DefaultTargetID)

	// Attacker and target fall back to the current attacker and the
	// default target.
	v, applied, err = fs.ApplyAttack(ctx, AttackRequest{Damage: "25"})
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, "-5", v.Rows[0].HP)
	assert.Equal(t, "g", *v.CurrentAttackerID)
	assert.Equal(t, 1, v.Round)
	assert.Equal(t, []int{1}, v.Alive)

	saved := repo.lastSave()
	assert.Equal(t, v.Rows, saved.Rows)
	assert.Equal(t, 1, saved.Round)
	require.Len(t, saved.Log, 2)
	assert.Equal(t, "Aldric", saved.Log[1].Rows[0].Combatant)
}

func TestSession_RejectedAttackWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := newMockFightRepo()
	fs := loadSession(t, repo, twoCombatants())
	before := repo.saveCount()

	_, applied, err := fs.ApplyAttack(ctx, AttackRequest{AttackerID: "a", TargetID: "a", Damage: "3"})
	require.NoError(t, err)
	assert.False(t, applied)
	_, applied, err = fs.ApplyAttack(ctx, AttackRequest{AttackerID: "a", TargetID: "missing", Damage: "3"})
	require.NoError(t, err)
	assert.False(t, applied)

	assert.Equal(t, before, repo.saveCount())
	assert.Equal(t, 0, fs.View().LogLength)
}

func TestSession_HistoryIsReadOnly(t *testing.T) {
	ctx := context.Background()
	repo := newMockFightRepo()
	fs := loadSession(t, repo, twoCombatants())
	_, _, err := fs.ApplyAttack(ctx, AttackRequest{TargetID: "g", Damage: "6"})
	require.NoError(t, err)
	_, err = fs.UpdateRow(ctx, "g", tracker.Row{Combatant: "Groth", Initiative: "10", HP: "1"})
	require.NoError(t, err)

	v, err := fs.ViewHistory(0)
	require.NoError(t, err)
	require.NotNil(t, v.History)
	assert.Equal(t, "12", v.History.Rows[1].HP)
	assert.Equal(t, "1", v.Rows[1].HP)

	_, _, err = fs.ApplyAttack(ctx, AttackRequest{AttackerID: "g", TargetID: "a", Damage: "1"})
	assert.ErrorIs(t, err, ErrHistoryReadOnly)
	_, _, err = fs.AddRow(ctx, tracker.Row{Combatant: "Imp"})
	assert.ErrorIs(t, err, ErrHistoryReadOnly)
	_, err = fs.ToggleDeathSave(ctx, tracker.RoleCleric, tracker.SaveSuccess, 0)
	assert.ErrorIs(t, err, ErrHistoryReadOnly)

	_, err = fs.ViewHistory(5)
	assert.ErrorIs(t, err, ErrLogEntryNotFound)

	v = fs.ReturnToLive()
	assert.Nil(t, v.HistoryIndex)
	_, _, err = fs.AddRow(ctx, tracker.Row{Combatant: "Imp"})
	assert.NoError(t, err)
}

func TestSession_PersistFailureKeepsStateAndRetries(t *testing.T) {
	ctx := context.Background()
	repo := newMockFightRepo()
	fs := loadSession(t, repo, twoCombatants())

	repo.saveErr = errors.New("database is locked")
	v, applied, err := fs.ApplyAttack(ctx, AttackRequest{TargetID: "g", Damage: "6"})
	require.True(t, applied)
	require.ErrorIs(t, err, ErrPersistFailed)
	assert.Equal(t, "12", v.Rows[1].HP)
	assert.True(t, v.PendingWrite)

	_, err = fs.Retry(ctx)
	assert.ErrorIs(t, err, ErrPersistFailed)

	repo.saveErr = nil
	v, err = fs.Retry(ctx)
	require.NoError(t, err)
	assert.False(t, v.PendingWrite)
	saved := repo.lastSave()
	assert.Equal(t, "12", saved.Rows[1].HP)
	assert.Len(t, saved.Log, 1)

	_, err = fs.Retry(ctx)
	assert.ErrorIs(t, err, ErrNothingToRetry)
}

func TestSession_RowEditing(t *testing.T) {
	ctx := context.Background()
	repo := newMockFightRepo()
	fs := loadSession(t, repo, []tracker.Row{})
	assert.Nil(t, fs.View().CurrentAttackerID)

	_, _, err := fs.AddRow(ctx, tracker.Row{Combatant: "  "})
	assert.ErrorIs(t, err, ErrEmptyRow)

	slow, v, err := fs.AddRow(ctx, tracker.Row{Combatant: "Slow", Initiative: "2", HP: "5"})
	require.NoError(t, err)
	assert.NotEmpty(t, slow.ID)
	assert.Equal(t, slow.ID, *v.CurrentAttackerID)

	fast, v, err := fs.AddRow(ctx, tracker.Row{Combatant: "Fast", Initiative: "20", HP: "5"})
	require.NoError(t, err)
	// An attacker already picked is kept.
	assert.Equal(t, slow.ID, *v.CurrentAttackerID)
	assert.Equal(t, []int{1, 0}, v.TurnOrder)

	v, err = fs.UpdateRow(ctx, slow.ID, tracker.Row{Combatant: "Slow", Initiative: "2", HP: "0"})
	require.NoError(t, err)
	assert.Equal(t, fast.ID, *v.CurrentAttackerID)

	_, err = fs.UpdateRow(ctx, "nope", tracker.Row{Combatant: "x"})
	assert.ErrorIs(t, err, ErrRowNotFound)

	v, err = fs.DeleteRow(ctx, fast.ID)
	require.NoError(t, err)
	assert.Nil(t, v.CurrentAttackerID)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, slow.ID, v.Rows[0].ID)

	_, err = fs.DeleteRow(ctx, fast.ID)
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestSession_AddRowLimit(t *testing.T) {
	ctx := context.Background()
	repo := newMockFightRepo()
	rows := make([]tracker.Row, 0, tracker.MaxRows)
	for i := 0; i < tracker.MaxRows; i++ {
		rows = append(rows, tracker.Row{ID: tracker.NewRowID(), Combatant: "Goblin"})
	}
	fs := loadSession(t, repo, rows)
	_, _, err := fs.AddRow(ctx, tracker.Row{Combatant: "One too many"})
	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestSession_ResetKeepsRoundAndLog(t *testing.T) {
	ctx := context.Background()
	repo := newMockFightRepo()
	fs := loadSession(t, repo, twoCombatants())
	_, _, err := fs.ApplyAttack(ctx, AttackRequest{TargetID: "g", Damage: "6"})
	require.NoError(t, err)
	_, _, err = fs.ApplyAttack(ctx, AttackRequest{Damage: "2"})
	require.NoError(t, err)
	_, err = fs.ToggleDeathSave(ctx, tracker.RoleRogue, tracker.SaveFailure, 1)
	require.NoError(t, err)

	v, err := fs.ResetRows(ctx)
	require.NoError(t, err)
	assert.Empty(t, v.Rows)
	assert.Nil(t, v.CurrentAttackerID)
	assert.Nil(t, v.DefaultTargetID)
	assert.Equal(t, 1, v.Round)
	assert.Equal(t, 2, v.LogLength)
	assert.Equal(t, tracker.DefaultDeathSaves(), v.DeathSaves)
}

func TestSession_SetAttacker(t *testing.T) {
	ctx := context.Background()
	repo := newMockFightRepo()
	rows := twoCombatants()
	rows = append(rows, tracker.Row{ID: "d", Combatant: "Downed", HP: "0"})
	fs := loadSession(t, repo, rows)

	g := "g"
	v, err := fs.SetAttacker(ctx, &g)
	require.NoError(t, err)
	assert.Equal(t, "g", *v.CurrentAttackerID)

	d := "d"
	_, err = fs.SetAttacker(ctx, &d)
	assert.ErrorIs(t, err, ErrInvalidAttacker)
	missing := "missing"
	_, err = fs.SetAttacker(ctx, &missing)
	assert.ErrorIs(t, err, ErrInvalidAttacker)

	// Clearing at round 0 falls back to the head of the turn order.
	v, err = fs.SetAttacker(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", *v.CurrentAttackerID)
}

func TestSession_ToggleDeathSave(t *testing.T) {
	ctx := context.Background()
	repo := newMockFightRepo()
	fs := loadSession(t, repo, twoCombatants())

	v, err := fs.ToggleDeathSave(ctx, "Wizard", tracker.SaveSuccess, 2)
	require.NoError(t, err)
	assert.True(t, v.DeathSaves.Wizard.Successes[2])
	assert.True(t, repo.lastSave().DeathSaves.Wizard.Successes[2])

	_, err = fs.ToggleDeathSave(ctx, "bard", tracker.SaveSuccess, 0)
	assert.ErrorIs(t, err, ErrInvalidDeathSave)
	assert.ErrorIs(t, err, tracker.ErrUnknownRole)
	_, err = fs.ToggleDeathSave(ctx, tracker.RoleCleric, tracker.SaveSuccess, 3)
	assert.ErrorIs(t, err, ErrInvalidDeathSave)
}

func TestSession_LogEntryDoesNotChangeMode(t *testing.T) {
	ctx := context.Background()
	repo := newMockFightRepo()
	fs := loadSession(t, repo, twoCombatants())
	_, _, err := fs.ApplyAttack(ctx, AttackRequest{TargetID: "g", Damage: "6"})
	require.NoError(t, err)

	snap, err := fs.LogEntry(0)
	require.NoError(t, err)
	assert.Equal(t, "Round 0: Aldric attacked Groth for 6 dmg.", snap.Summary)
	assert.Nil(t, fs.View().HistoryIndex)

	_, err = fs.LogEntry(1)
	assert.ErrorIs(t, err, ErrLogEntryNotFound)
}

func TestSessions_ConcurrentLoadsShareOneSession(t *testing.T) {
	repo := newMockFightRepo()
	f := repo.add("Crowded", twoCombatants())
	sessions := NewSessions(repo)

	var wg sync.WaitGroup
	got := make([]*FightSession, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fs, err := sessions.Get(context.Background(), f.ID)
			if err == nil {
				got[i] = fs
			}
		}(i)
	}
	wg.Wait()

	for _, fs := range got {
		require.NotNil(t, fs)
		assert.Same(t, got[0], fs)
	}
	assert.Equal(t, 1, repo.getCalls)

	_, err := sessions.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrFightNotFound)
}
