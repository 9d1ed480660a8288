package main

// Exit codes used by every subcommand.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid values)
	ExitDataError   = 3 // Data error (unparseable export, missing columns)
	ExitNetworkErr  = 4 // Network error (download or resolver failure)
)
