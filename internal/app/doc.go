// Package app is the composition root for shelf.
//
// Run wires the pieces together in order:
//
//	config.LoadEnv()     Seed the environment from .env
//	config.Load()        Resolve file + environment settings
//	newLogger()          Open the log file (the TUI owns the terminal)
//	library.NewClient()  HTTP client for the selected backend
//	prefs.Load()         Theme preference
//	ui.Run()             Start the TUI (blocks)
//
// # Error Handling
//
// Startup failures are returned from Run: an unreadable or invalid config
// file, a bad .env path, an invalid base URL or a log file that cannot be
// opened. An unreadable prefs file is logged and replaced by defaults.
// Once the TUI is running, request failures are shown on the screen that
// made the request and never end the program.
//
// There is no background polling. Screens fetch when they are entered and
// when the user asks for a reload.
package app
