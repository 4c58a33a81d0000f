package tracker

import (
	"errors"
	"strings"
)

// Character roles tracked on the death-saves panel.
const (
	RoleCleric  = "cleric"
	RoleFighter = "fighter"
	RoleRogue   = "rogue"
	RoleWizard  = "wizard"
)

// Roles lists the tracked roles in display order.
var Roles = []string{RoleCleric, RoleFighter, RoleRogue, RoleWizard}

// Death-save circle kinds.
const (
	SaveSuccess = "successes"
	SaveFailure = "failures"
)

var (
	ErrUnknownRole     = errors.New("unknown death-save role")
	ErrUnknownSaveKind = errors.New("unknown death-save kind")
	ErrSaveIndex       = errors.New("death-save index out of range")
)

// DeathSaves holds three success and three failure circles.
type DeathSaves struct {
	Successes [3]bool `json:"successes"`
	Failures  [3]bool `json:"failures"`
}

// DeathSavesState is the fixed per-role death-save sheet. It is not linked
// to any row of the fight.
type DeathSavesState struct {
	Cleric  DeathSaves `json:"cleric"`
	Fighter DeathSaves `json:"fighter"`
	Rogue   DeathSaves `json:"rogue"`
	Wizard  DeathSaves `json:"wizard"`
}

// DefaultDeathSaves returns a sheet with every circle empty.
func DefaultDeathSaves() DeathSavesState { return DeathSavesState{} }

func (s *DeathSavesState) role(name string) *DeathSaves {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case RoleCleric:
		return &s.Cleric
	case RoleFighter:
		return &s.Fighter
	case RoleRogue:
		return &s.Rogue
	case RoleWizard:
		return &s.Wizard
	}
	return nil
}

// Toggle returns a copy of s with one circle flipped.
func (s DeathSavesState) Toggle(role, kind string, index int) (DeathSavesState, error) {
	ds := s.role(role)
	if ds == nil {
		return s, ErrUnknownRole
	}
	if index < 0 || index > 2 {
		return s, ErrSaveIndex
	}
	switch kind {
	case SaveSuccess:
		ds.Successes[index] = !ds.Successes[index]
	case SaveFailure:
		ds.Failures[index] = !ds.Failures[index]
	default:
		return s, ErrUnknownSaveKind
	}
	return s, nil
}
