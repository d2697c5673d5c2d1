package usecase

import (
	"context"
	"fmt"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/ports"
	"github.com/guimsilvaa/topufa/internal/usecase/extract"
)

type ResolveIDs struct {
	stage
	retriever ports.Retriever
	idPath    string
}

// NewResolveIDs builds the resolver. idPath is a JSONPath template where {{code}}
// is replaced by the code being resolved.
func NewResolveIDs(r ports.Retriever, idPath string, opts ...Option) *ResolveIDs {
	return &ResolveIDs{
		stage:     newStage(opts),
		retriever: r,
		idPath:    idPath,
	}
}

// Execute resolves every code sequentially. Each code ends up in exactly one of
// Resolved or Failed. Transport errors and cancellation stop the stage and
// return the partial result.
func (uc *ResolveIDs) Execute(ctx context.Context, codes []domain.Code) (domain.ResolutionResult, error) {
	result := domain.ResolutionResult{
		Resolved: make([]domain.Resolution, 0, len(codes)),
		Failed:   []domain.ResolveFailure{},
	}

	uc.progress.Begin("Fetching UniProt IDs", len(codes))
	defer uc.progress.End()

	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		expr, err := domain.RenderTemplate(uc.idPath, map[string]string{"code": string(code)}, nil)
		if err != nil {
			return result, err
		}

		r, err := uc.retriever.Retrieve(ctx, string(code))
		if err != nil {
			uc.log.Error("resolve.transport", "code", code, "error", err)
			return result, fmt.Errorf("resolve %s: %w", code, err)
		}

		if !r.Found {
			reason := fmt.Sprintf("mapping request returned status %d", r.StatusCode)
			result.Fail(code, reason, r.StatusCode)
			uc.log.Info("resolve.failed", "code", code, "status", r.StatusCode)
			uc.progress.Advance(string(code), false)
			continue
		}

		candidates, err := extract.Candidates(r.Body, expr)
		if err != nil {
			result.Fail(code, err.Error(), r.StatusCode)
			uc.log.Info("resolve.failed", "code", code, "reason", err.Error())
			uc.progress.Advance(string(code), false)
			continue
		}

		res := result.Add(code, candidates[0], candidates)
		uc.log.Debug("resolve.code", "code", code, "uniprot_id", res.UniProtID, "candidates", len(candidates))
		uc.progress.Advance(string(code), true)
	}

	return result, nil
}
