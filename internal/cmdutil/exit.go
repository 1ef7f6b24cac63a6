// internal/cmdutil/exit.go
package cmdutil

// Process exit codes shared by every entry point.
const (
	ExitOK        = 0   // success, or the output reader closed early
	ExitConfig    = 2   // bad flags, linker spec or sample sheet
	ExitRuntime   = 3   // I/O or malformed input
	ExitCancelled = 130 // SIGINT/SIGTERM
)
