package main

// Exit codes shared by every command
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, I/O failure)
	ExitConfigError = 2 // Configuration error (bad config file, unknown key)
	ExitDataError   = 3 // Data error (malformed or invalid citation metadata)
)
