package engine

import (
	"sort"

	"github.com/ericogr/fight-tracker/internal/tracker"
)

// TurnOrder returns the original row indices in attack order: rows with a
// numeric initiative first, highest initiative first, ties and rows without
// initiative by original index. It is recomputed from scratch on every call.
func TurnOrder(rows []tracker.Row) []int {
	inits := make([]tracker.Number, len(rows))
	order := make([]int, len(rows))
	for i := range rows {
		inits[i] = tracker.ParseNumber(rows[i].Initiative)
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		a, b := order[x], order[y]
		aHas, bHas := inits[a].Valid(), inits[b].Valid()
		switch {
		case aHas && bHas:
			if inits[a].Value != inits[b].Value {
				return inits[a].Value > inits[b].Value
			}
			return a < b
		case aHas:
			return true
		case bHas:
			return false
		default:
			return a < b
		}
	})
	return order
}

// IsAlive reports whether a combatant may act or be targeted. Unknown HP
// (blank or not a number) counts as alive; zero or negative HP does not.
func IsAlive(row tracker.Row) bool {
	hp := tracker.ParseNumber(row.HP)
	if !hp.Valid() {
		return true
	}
	return hp.Value > 0
}

// AliveIndices returns the indices of living rows in original order.
func AliveIndices(rows []tracker.Row) []int {
	out := make([]int, 0, len(rows))
	for i := range rows {
		if IsAlive(rows[i]) {
			out = append(out, i)
		}
	}
	return out
}

// LiveTurnOrder is TurnOrder restricted to living rows.
func LiveTurnOrder(rows []tracker.Row) []int {
	order := TurnOrder(rows)
	live := order[:0]
	for _, idx := range order {
		if IsAlive(rows[idx]) {
			live = append(live, idx)
		}
	}
	return live
}

// isAliveID reports whether id names a row that is currently alive.
func isAliveID(rows []tracker.Row, id string) bool {
	idx := tracker.IndexOfRow(rows, id)
	return idx >= 0 && IsAlive(rows[idx])
}
