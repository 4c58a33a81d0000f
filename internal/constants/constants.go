package constants

// Centralized constants for environment keys, routes and API messages.
const (
	// Environment variable keys
	EnvConfigPath = "TRACKER_CONFIG"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	DefaultConfigPath = "./tracker_config.json"
)

// Storage drivers accepted in configuration.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Routes used by the backend router
const (
	RouteAPIPrefix       = "/api"
	RouteHealth          = "/healthz"
	RouteVersion         = "/version"
	RouteFights          = "/fights"
	RouteMockFight       = "/fights/mock"
	RouteFightByID       = "/fights/:fightID"
	RouteFightName       = "/fights/:fightID/name"
	RouteFightRows       = "/fights/:fightID/rows"
	RouteFightRowByID    = "/fights/:fightID/rows/:rowID"
	RouteFightReset      = "/fights/:fightID/reset"
	RouteFightAttacker   = "/fights/:fightID/attacker"
	RouteFightAttack     = "/fights/:fightID/attack"
	RouteFightDeathSaves = "/fights/:fightID/death-saves"
	RouteFightLogEntry   = "/fights/:fightID/log/:index"
	RouteFightHistory    = "/fights/:fightID/history"
	RouteFightRetry      = "/fights/:fightID/retry"
	RouteInventory       = "/inventory"
	RouteInventoryByID   = "/inventory/:itemID"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
	JSONKeyRetry   = "retry"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest    = "Invalid request"
	ErrInvalidFightID    = "Invalid fight ID"
	ErrInvalidItemID     = "Invalid item ID"
	ErrInvalidLogIndex   = "Invalid log index"
	ErrFightNotFound     = "Fight not found"
	ErrRowNotFound       = "Combatant not found"
	ErrItemNotFound      = "Item not found"
	ErrLogEntryNotFound  = "Log entry not found"
	ErrFailedFetchFights = "Failed to fetch fights"
	ErrFailedFetchFight  = "Failed to fetch fight"
	ErrFailedCreateFight = "Failed to create fight"
	ErrFailedUpdateFight = "Failed to update fight"
	ErrFailedDeleteFight = "Failed to delete fight"
	ErrFailedSaveFight   = "Failed to save fight state; retry to resend it"
	ErrFailedFetchItems  = "Failed to fetch inventory"
	ErrFailedCreateItem  = "Failed to create item"
	ErrFailedUpdateItem  = "Failed to update item"
	ErrFailedDeleteItem  = "Failed to delete item"
	ErrItemNameRequired  = "Item name is required"
	ErrHistoryReadOnly   = "Fight is showing history; return to live to make changes"
	ErrTooManyRows       = "Fight already has the maximum number of combatants"
	ErrEmptyRow          = "Combatant row is empty"
	ErrInvalidAttacker   = "Attacker must be a combatant who is still standing"
	ErrInvalidDeathSave  = "Invalid death save"
	ErrNothingToRetry    = "No pending write to retry"
)

// Logging field names
const (
	LogFieldFightID  = "fight_id"
	LogFieldItemID   = "item_id"
	LogFieldRowID    = "row_id"
	LogFieldRound    = "round"
	LogFieldAttacker = "attacker_id"
	LogFieldTarget   = "target_id"
	LogFieldDriver   = "driver"
	LogFieldAddr     = "addr"
	LogFieldPath     = "path"
	LogFieldOp       = "op"
)
