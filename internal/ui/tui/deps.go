package tui

import (
	"io"
	"log/slog"
)

// Deps carries what the prompt needs from the outside world.
// CheckInput and CheckQuery validate a path before it is accepted.
type Deps struct {
	CheckInput func(path string) error
	CheckQuery func(path string) error

	Input  io.Reader
	Output io.Writer

	Logger *slog.Logger
}
