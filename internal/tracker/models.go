package tracker

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultFightName is used when a fight is created without a name.
	DefaultFightName = "New Fight"
	// UntitledFightName replaces a blank name on rename.
	UntitledFightName = "Untitled Fight"
	// MaxRows caps the number of combatants in a single fight.
	MaxRows = 20
)

// Row is one combatant line in a fight. Every field except ID is free text
// typed by the operator; numeric meaning is derived with ParseNumber.
type Row struct {
	// ID is a stable identifier assigned when the row is created. Turn
	// order, attacker selection and the log refer to rows by ID so deleting
	// a row never shifts the identity of the others.
	ID         string `json:"id"`
	Initiative string `json:"initiative"`
	Combatant  string `json:"combatant"`
	HP         string `json:"hp"`
	Conditions string `json:"conditions"`
}

// NewRowID returns a fresh stable row identifier.
func NewRowID() string { return uuid.NewString() }

// IsBlank reports whether the operator left every editable field empty.
func (r Row) IsBlank() bool {
	return strings.TrimSpace(r.Initiative) == "" &&
		strings.TrimSpace(r.Combatant) == "" &&
		strings.TrimSpace(r.HP) == "" &&
		strings.TrimSpace(r.Conditions) == ""
}

// CloneRows returns a copy of rows that shares no backing array with the input.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	return out
}

// EnsureRowIDs assigns IDs to rows persisted before rows carried one.
// It returns true when at least one row was changed.
func EnsureRowIDs(rows []Row) bool {
	changed := false
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = NewRowID()
			changed = true
		}
	}
	return changed
}

// IndexOfRow returns the position of the row with the given ID, or -1.
func IndexOfRow(rows []Row, id string) int {
	for i := range rows {
		if rows[i].ID == id {
			return i
		}
	}
	return -1
}

// LogEntry is an immutable record of one resolved attack.
type LogEntry struct {
	// Round is the round number after the attack was applied.
	Round int `json:"round"`
	// AttackerIndex and TargetIndex are positions inside Rows.
	AttackerIndex int    `json:"attacker_index"`
	TargetIndex   int    `json:"target_index"`
	AttackerID    string `json:"attacker_id,omitempty"`
	TargetID      string `json:"target_id,omitempty"`
	// Damage is nil when the operator typed something that is not a number.
	Damage            *float64 `json:"damage"`
	AttackerCondition string   `json:"attacker_condition,omitempty"`
	TargetCondition   string   `json:"target_condition,omitempty"`
	// Rows is a full snapshot of every row after the attack.
	Rows []Row `json:"rows"`
}

// Fight is the aggregate root of a combat encounter.
//
// Fights are hard-deleted, so the type deliberately does not embed
// gorm.Model (whose DeletedAt would turn deletes into soft deletes).
type Fight struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"not null"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Rows       []Row           `json:"rows" gorm:"column:rows_json;serializer:json;not null"`
	DeathSaves DeathSavesState `json:"death_saves" gorm:"column:death_saves_json;serializer:json;not null"`
	// CurrentAttackerID is nil until an attacker has been determined.
	CurrentAttackerID *string    `json:"current_attacker_id" gorm:"column:current_attacker_id"`
	Round             int        `json:"round" gorm:"not null;default:0"`
	Log               []LogEntry `json:"log" gorm:"column:log_json;serializer:json;not null"`
}

// TableName keeps the table name stable regardless of naming strategy.
func (Fight) TableName() string { return "fights" }

// CurrentAttackerIndex translates the attacker ID into a row position. It
// returns nil when no attacker is set or the ID no longer matches a row.
func (f *Fight) CurrentAttackerIndex() *int {
	if f == nil || f.CurrentAttackerID == nil {
		return nil
	}
	idx := IndexOfRow(f.Rows, *f.CurrentAttackerID)
	if idx < 0 {
		return nil
	}
	return &idx
}

// State returns the write tuple of the fight.
func (f *Fight) State() FightState {
	return FightState{
		Rows:              f.Rows,
		DeathSaves:        f.DeathSaves,
		CurrentAttackerID: f.CurrentAttackerID,
		Round:             f.Round,
		Log:               f.Log,
	}
}

// ApplyState overwrites the mutable combat state with s.
func (f *Fight) ApplyState(s FightState) {
	f.Rows = s.Rows
	f.DeathSaves = s.DeathSaves
	f.CurrentAttackerID = s.CurrentAttackerID
	f.Round = s.Round
	f.Log = s.Log
}

// FightState is the full tuple written on every fight mutation. Storage
// never receives a partial update.
type FightState struct {
	Rows              []Row           `json:"rows"`
	DeathSaves        DeathSavesState `json:"death_saves"`
	CurrentAttackerID *string         `json:"current_attacker_id"`
	Round             int             `json:"round"`
	Log               []LogEntry      `json:"log"`
}

// Normalized returns a copy of s with nil slices replaced by empty ones so
// the stored JSON is always an array.
func (s FightState) Normalized() FightState {
	if s.Rows == nil {
		s.Rows = []Row{}
	}
	if s.Log == nil {
		s.Log = []LogEntry{}
	}
	for i := range s.Log {
		if s.Log[i].Rows == nil {
			s.Log[i].Rows = []Row{}
		}
	}
	return s
}

// NewFightState returns the state of a freshly created fight.
func NewFightState() FightState {
	return FightState{
		Rows:       []Row{},
		DeathSaves: DefaultDeathSaves(),
		Round:      0,
		Log:        []LogEntry{},
	}
}

// FightSummary is the listing projection of a fight.
type FightSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryItem is a piece of party loot. It is unrelated to fights.
type InventoryItem struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Origin         *string   `json:"origin"`
	EstimatedPrice *string   `json:"estimated_price"`
	CreatedAt      time.Time `json:"created_at"`
}

func (InventoryItem) TableName() string { return "inventory_items" }

// InventoryInput carries the raw operator text for an inventory item.
type InventoryInput struct {
	Name           string `json:"name"`
	Origin         string `json:"origin"`
	EstimatedPrice string `json:"estimated_price"`
}

// Normalize trims every field and converts blank origin/price to absent.
// ok is false when the name is blank after trimming.
func (in InventoryInput) Normalize() (name string, origin, price *string, ok bool) {
	name = strings.TrimSpace(in.Name)
	origin = optionalText(in.Origin)
	price = optionalText(in.EstimatedPrice)
	return name, origin, price, name != ""
}

func optionalText(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

// FightName returns the stored name for a newly created fight.
func FightName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return DefaultFightName
}

// RenamedFightName returns the stored name for a rename request.
func RenamedFightName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return UntitledFightName
}
