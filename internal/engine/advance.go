package engine

import "github.com/ericogr/fight-tracker/internal/tracker"

// AutoAdvance corrects the active attacker after any change to rows or to
// the attacker itself. When the attacker is down or no longer exists, or no
// attacker has been picked yet while rows exist at round 0, the attacker
// becomes the head of the live turn order (nil when nobody is alive).
// Rows and round are never touched. Applying it to an already consistent
// state returns changed=false.
func AutoAdvance(rows []tracker.Row, attackerID *string, round int) (next *string, changed bool) {
	if attackerID != nil {
		if isAliveID(rows, *attackerID) {
			return attackerID, false
		}
		head := liveHead(rows)
		return head, true
	}
	if len(rows) == 0 || round != 0 {
		return nil, false
	}
	head := liveHead(rows)
	if head == nil {
		return nil, false
	}
	return head, true
}

func liveHead(rows []tracker.Row) *string {
	live := LiveTurnOrder(rows)
	if len(live) == 0 {
		return nil
	}
	id := rows[live[0]].ID
	return &id
}
