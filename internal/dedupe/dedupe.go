package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// concurrent loads of the same resource. Only one load runs for a given key
// while other callers wait for its result.

import (
	"strconv"

	"golang.org/x/sync/singleflight"
)

// SessionGroup deduplicates fight session loads keyed by FightKey.
var SessionGroup singleflight.Group

// FightKey returns the canonical singleflight key for a fight id
// (e.g. "fight:7").
func FightKey(id uint) string {
	return "fight:" + strconv.FormatUint(uint64(id), 10)
}
