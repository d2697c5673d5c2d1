package blast

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ToolError is a non-zero exit of a BLAST+ program.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	err      error
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	if msg == "" && e.err != nil {
		msg = e.err.Error()
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Tool, e.ExitCode, msg)
}

func (e *ToolError) Unwrap() error { return e.err }

func newToolError(tool string, args []string, stderr string, err error) *ToolError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &ToolError{
		Tool:     tool,
		Args:     args,
		ExitCode: code,
		Stderr:   stderr,
		err:      err,
	}
}

// ExitCode returns the exit status carried by err, or -1.
func ExitCode(err error) int {
	var te *ToolError
	if errors.As(err, &te) {
		return te.ExitCode
	}
	return -1
}
