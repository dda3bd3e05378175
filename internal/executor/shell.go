package executor

import "runtime"

// Shell is the platform capability used to run a command string. It is
// resolved once at startup and injected, so no GOOS checks happen per call.
type Shell struct {
	Bin  string
	Flag string
}

// DefaultShell returns the platform command interpreter with its
// run-string flag.
func DefaultShell() Shell {
	if runtime.GOOS == "windows" {
		return Shell{Bin: "cmd", Flag: "/C"}
	}
	return Shell{Bin: "sh", Flag: "-c"}
}
