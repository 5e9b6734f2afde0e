package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"
	TestEnvironment = "test"

	// Event types
	EventWhitelistAdded        = "whitelist.added"
	EventWhitelistRemoved      = "whitelist.removed"
	EventBatchWhitelistAdded   = "whitelist.batch_added"
	EventBatchWhitelistRemoved = "whitelist.batch_removed"
	EventDerivativeRegistered  = "derivative.registered"
	EventEmergencyWithdraw     = "recovery.withdraw"
	EventPaused                = "agent.paused"
	EventUnpaused              = "agent.unpaused"

	// Defaults
	DefaultPort = "8080"
)
