package ports

import (
	"context"

	"github.com/guimsilvaa/topufa/internal/domain"
)

// Retriever fetches the remote document addressed by key.
// A non-nil error means the transport failed; a missing document is
// reported through Retrieval.Found instead.
type Retriever interface {
	Retrieve(ctx context.Context, key string) (domain.Retrieval, error)
}

// RetrieverFunc adapts a function (e.g. an in-memory lookup) to Retriever.
type RetrieverFunc func(ctx context.Context, key string) (domain.Retrieval, error)

func (f RetrieverFunc) Retrieve(ctx context.Context, key string) (domain.Retrieval, error) {
	return f(ctx, key)
}
