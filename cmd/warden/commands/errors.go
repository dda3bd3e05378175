package commands

import "fmt"

// ExitError carries a child process exit code through cobra so main can
// propagate it as the warden exit status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}
