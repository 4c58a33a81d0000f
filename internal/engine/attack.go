package engine

import (
	"strings"

	"github.com/ericogr/fight-tracker/internal/tracker"
)

// AttackInput is everything the operator supplies for one attack plus the
// current fight state it applies to.
type AttackInput struct {
	Rows              []tracker.Row
	AttackerID        string
	TargetID          string
	DamageText        string
	AttackerCondition string
	TargetCondition   string
	Round             int
}

// AttackResult is the next fight state produced by an applied attack.
type AttackResult struct {
	Rows []tracker.Row
	// NextAttackerID is nil when nobody is left alive to act.
	NextAttackerID *string
	Round          int
	Entry          tracker.LogEntry
}

// ApplyAttack resolves one attack. It returns ok=false, and touches nothing,
// when the attacker or target is missing, they are the same row, nobody is
// alive in the turn order, or either of them is already down.
//
// A numeric damage is subtracted from the target's HP when that HP is itself
// a number. Non-blank condition texts overwrite the row's conditions; blank
// means unchanged. The turn then passes to the next living combatant after
// the attacker, and the round increments when the order wraps.
func ApplyAttack(in AttackInput) (AttackResult, bool) {
	if in.AttackerID == "" || in.TargetID == "" || in.AttackerID == in.TargetID {
		return AttackResult{}, false
	}
	attackerIdx := tracker.IndexOfRow(in.Rows, in.AttackerID)
	targetIdx := tracker.IndexOfRow(in.Rows, in.TargetID)
	if attackerIdx < 0 || targetIdx < 0 {
		return AttackResult{}, false
	}
	if len(LiveTurnOrder(in.Rows)) == 0 {
		return AttackResult{}, false
	}
	if !IsAlive(in.Rows[attackerIdx]) || !IsAlive(in.Rows[targetIdx]) {
		return AttackResult{}, false
	}

	damage := tracker.ParseNumber(in.DamageText)
	attackerCond := strings.TrimSpace(in.AttackerCondition)
	targetCond := strings.TrimSpace(in.TargetCondition)

	next := tracker.CloneRows(in.Rows)
	if damage.Valid() {
		if hp := tracker.ParseNumber(next[targetIdx].HP); hp.Valid() {
			next[targetIdx].HP = tracker.FormatNumber(hp.Value - damage.Value)
		}
	}
	if attackerCond != "" {
		next[attackerIdx].Conditions = attackerCond
	}
	if targetCond != "" {
		next[targetIdx].Conditions = targetCond
	}

	nextAttacker, wrapped := advanceFrom(next, attackerIdx)
	round := in.Round
	if wrapped {
		round++
	}

	entry := tracker.LogEntry{
		Round:             round,
		AttackerIndex:     attackerIdx,
		TargetIndex:       targetIdx,
		AttackerID:        in.AttackerID,
		TargetID:          in.TargetID,
		AttackerCondition: attackerCond,
		TargetCondition:   targetCond,
		Rows:              tracker.CloneRows(next),
	}
	if damage.Valid() {
		d := damage.Value
		entry.Damage = &d
	}

	return AttackResult{Rows: next, NextAttackerID: nextAttacker, Round: round, Entry: entry}, true
}

// advanceFrom picks the living combatant after the one at attackerIdx. When
// the attacker is no longer in the live order the search starts at position
// 0. wrapped is true when the next position is the head of a non-empty order.
func advanceFrom(rows []tracker.Row, attackerIdx int) (next *string, wrapped bool) {
	live := LiveTurnOrder(rows)
	if len(live) == 0 {
		return nil, false
	}
	pos := 0
	for i, idx := range live {
		if idx == attackerIdx {
			pos = i
			break
		}
	}
	nextPos := (pos + 1) % len(live)
	id := rows[live[nextPos]].ID
	return &id, nextPos == 0
}
