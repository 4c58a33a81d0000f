package service

import "errors"

var (
	ErrFightNotFound    = errors.New("fight not found")
	ErrRowNotFound      = errors.New("combatant not found")
	ErrItemNotFound     = errors.New("inventory item not found")
	ErrLogEntryNotFound = errors.New("log entry not found")
	ErrItemNameRequired = errors.New("item name is required")
	ErrHistoryReadOnly  = errors.New("fight is showing history; return to live first")
	ErrTooManyRows      = errors.New("fight already has the maximum number of combatants")
	ErrEmptyRow         = errors.New("combatant row is empty")
	ErrInvalidAttacker  = errors.New("attacker must be a combatant who is still standing")
	ErrInvalidDeathSave = errors.New("invalid death save")
	ErrNothingToRetry   = errors.New("no pending write to retry")
	// ErrPersistFailed wraps a storage failure on a fight write. The
	// in-memory state already reflects the change and the payload is kept
	// for Retry.
	ErrPersistFailed = errors.New("failed to persist fight state")
)
