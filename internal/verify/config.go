package verify

// Config holds the reporting switches of a check run. It is fixed for the
// whole run.
type Config struct {
	// IgnoreMissing skips unreadable targets instead of aborting.
	IgnoreMissing bool
	// Quiet drops OK lines, FAILED lines, warnings and the summary.
	Quiet bool
	// Status drops OK and FAILED lines; only the exit status tells.
	Status bool
	// Strict aborts the run on the first improperly formatted line.
	Strict bool
	// Warn reports improperly formatted lines.
	Warn bool
}

const (
	ExitOK      = 0
	ExitFailure = 1
)

const progName = "md5sum"
