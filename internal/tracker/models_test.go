package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeathSavesToggle(t *testing.T) {
	s := DefaultDeathSaves()

	next, err := s.Toggle("rogue", SaveFailure, 2)
	require.NoError(t, err)
	assert.True(t, next.Rogue.Failures[2])
	assert.False(t, s.Rogue.Failures[2], "toggle must not mutate the receiver")

	back, err := next.Toggle("Rogue", SaveFailure, 2)
	require.NoError(t, err)
	assert.Equal(t, DefaultDeathSaves(), back)

	_, err = s.Toggle("bard", SaveSuccess, 0)
	assert.ErrorIs(t, err, ErrUnknownRole)
	_, err = s.Toggle("wizard", "misses", 0)
	assert.ErrorIs(t, err, ErrUnknownSaveKind)
	_, err = s.Toggle("wizard", SaveSuccess, 3)
	assert.ErrorIs(t, err, ErrSaveIndex)
}

func TestInventoryInputNormalize(t *testing.T) {
	name, origin, price, ok := InventoryInput{Name: "  Ruby  ", Origin: "   ", EstimatedPrice: " 50gp "}.Normalize()
	require.True(t, ok)
	assert.Equal(t, "Ruby", name)
	assert.Nil(t, origin)
	require.NotNil(t, price)
	assert.Equal(t, "50gp", *price)

	_, _, _, ok = InventoryInput{Name: "   "}.Normalize()
	assert.False(t, ok)
}

func TestFightNames(t *testing.T) {
	assert.Equal(t, DefaultFightName, FightName("  "))
	assert.Equal(t, "Goblins", FightName(" Goblins "))
	assert.Equal(t, UntitledFightName, RenamedFightName(""))
}

func TestCurrentAttackerIndex(t *testing.T) {
	f := &Fight{Rows: []Row{{ID: "a"}, {ID: "b"}}}
	assert.Nil(t, f.CurrentAttackerIndex())

	id := "b"
	f.CurrentAttackerID = &id
	require.NotNil(t, f.CurrentAttackerIndex())
	assert.Equal(t, 1, *f.CurrentAttackerIndex())

	gone := "zzz"
	f.CurrentAttackerID = &gone
	assert.Nil(t, f.CurrentAttackerIndex())
}

func TestEnsureRowIDs(t *testing.T) {
	rows := []Row{{ID: "keep"}, {Combatant: "Legacy"}}
	assert.True(t, EnsureRowIDs(rows))
	assert.Equal(t, "keep", rows[0].ID)
	assert.NotEmpty(t, rows[1].ID)
	assert.False(t, EnsureRowIDs(rows))
}

func TestStateNormalized(t *testing.T) {
	s := FightState{Log: []LogEntry{{}}}.Normalized()
	assert.NotNil(t, s.Rows)
	assert.NotNil(t, s.Log[0].Rows)
}
