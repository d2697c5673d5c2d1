package ports

import (
	"context"

	"github.com/guimsilvaa/topufa/internal/domain"
)

// Aligner builds a sequence database and aligns a query against it.
// A non-zero exit of either external step must be returned as an error.
type Aligner interface {
	Align(ctx context.Context, req domain.AlignmentRequest) (domain.AlignmentResult, error)
}
