package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ericogr/fight-tracker/internal/tracker"
)

var ErrHistoryIndexOutOfRange = errors.New("history index out of range")

// HistorySnapshot is the read-only view of the fight right after log entry
// Index was appended. Names are resolved against the entry's own rows.
type HistorySnapshot struct {
	Index             int           `json:"index"`
	Total             int           `json:"total"`
	Round             int           `json:"round"`
	Rows              []tracker.Row `json:"rows"`
	AttackerIndex     int           `json:"attacker_index"`
	TargetIndex       int           `json:"target_index"`
	AttackerName      string        `json:"attacker_name"`
	TargetName        string        `json:"target_name"`
	Damage            *float64      `json:"damage"`
	AttackerCondition string        `json:"attacker_condition,omitempty"`
	TargetCondition   string        `json:"target_condition,omitempty"`
	// Incapacitated lists snapshot row indices whose HP is zero or below.
	Incapacitated []int  `json:"incapacitated"`
	Summary       string `json:"summary"`
}

// Snapshot returns the history view of log entry k. The returned rows are a
// copy; the log itself is never modified.
func Snapshot(log []tracker.LogEntry, k int) (HistorySnapshot, error) {
	if k < 0 || k >= len(log) {
		return HistorySnapshot{}, ErrHistoryIndexOutOfRange
	}
	e := log[k]
	rows := tracker.CloneRows(e.Rows)
	snap := HistorySnapshot{
		Index:             k,
		Total:             len(log),
		Round:             e.Round,
		Rows:              rows,
		AttackerIndex:     e.AttackerIndex,
		TargetIndex:       e.TargetIndex,
		AttackerName:      DisplayName(rows, e.AttackerIndex),
		TargetName:        DisplayName(rows, e.TargetIndex),
		AttackerCondition: e.AttackerCondition,
		TargetCondition:   e.TargetCondition,
		Incapacitated:     make([]int, 0),
	}
	if e.Damage != nil {
		d := *e.Damage
		snap.Damage = &d
	}
	for i := range rows {
		if !IsAlive(rows[i]) {
			snap.Incapacitated = append(snap.Incapacitated, i)
		}
	}
	snap.Summary = summarize(snap)
	return snap, nil
}

// DisplayName returns the combatant label for rows[index], falling back to
// a positional "Combatant N" when the name is blank or the row is missing.
func DisplayName(rows []tracker.Row, index int) string {
	if index >= 0 && index < len(rows) {
		if name := strings.TrimSpace(rows[index].Combatant); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Combatant %d", index+1)
}

func summarize(s HistorySnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Round %d: %s attacked %s", s.Round, s.AttackerName, s.TargetName)
	if s.Damage != nil {
		fmt.Fprintf(&b, " for %s dmg", tracker.FormatNumber(*s.Damage))
	}
	b.WriteString(".")
	return b.String()
}
