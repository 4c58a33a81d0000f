package service

import (
	"time"

	"github.com/ericogr/fight-tracker/internal/engine"
	"github.com/ericogr/fight-tracker/internal/tracker"
)

// FightView is what the operator sees of a fight: the stored state plus
// the derived turn order, aliveness and history cursor. Row positions in
// TurnOrder, LiveTurnOrder, Alive and CurrentAttackerIndex refer to Rows.
type FightView struct {
	ID                   uint                    `json:"id"`
	Name                 string                  `json:"name"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            time.Time               `json:"updated_at"`
	Rows                 []tracker.Row           `json:"rows"`
	TurnOrder            []int                   `json:"turn_order"`
	LiveTurnOrder        []int                   `json:"live_turn_order"`
	Alive                []int                   `json:"alive"`
	CurrentAttackerID    *string                 `json:"current_attacker_id"`
	CurrentAttackerIndex *int                    `json:"current_attacker_index"`
	DefaultTargetID      *string                 `json:"default_target_id"`
	Round                int                     `json:"round"`
	DeathSaves           tracker.DeathSavesState `json:"death_saves"`
	LogLength            int                     `json:"log_length"`
	HistoryIndex         *int                    `json:"history_index"`
	History              *engine.HistorySnapshot `json:"history,omitempty"`
	// PendingWrite is true while a failed write is waiting for Retry.
	PendingWrite bool `json:"pending_write"`
}
