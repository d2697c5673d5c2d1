package usecase

import (
	"io"
	"log/slog"

	"github.com/guimsilvaa/topufa/internal/ports"
)

// stage carries the ambient dependencies shared by the network-bound stages.
type stage struct {
	progress ports.Progress
	log      *slog.Logger
}

// Option configures a stage.
type Option func(*stage)

// WithProgress reports per-item progress to p.
func WithProgress(p ports.Progress) Option {
	return func(s *stage) {
		if p != nil {
			s.progress = p
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *stage) {
		if l != nil {
			s.log = l
		}
	}
}

func newStage(opts []Option) stage {
	s := stage{
		progress: ports.NopProgress{},
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
