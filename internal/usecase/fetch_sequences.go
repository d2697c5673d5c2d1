package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/TuftsBCB/io/fasta"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/ports"
)

type FetchSequences struct {
	stage
	retriever ports.Retriever
}

func NewFetchSequences(r ports.Retriever, opts ...Option) *FetchSequences {
	return &FetchSequences{
		stage:     newStage(opts),
		retriever: r,
	}
}

// Execute downloads one FASTA record per distinct identifier, in resolution order.
// Bodies are kept verbatim. Identifiers without a usable record are recorded in
// SequenceDatabase.Failed.
func (uc *FetchSequences) Execute(ctx context.Context, res domain.ResolutionResult) (domain.SequenceDatabase, error) {
	ids, codesByID := res.UniqueIDs()
	db := domain.SequenceDatabase{
		Records: make([]domain.SequenceRecord, 0, len(ids)),
		Failed:  []domain.FetchFailure{},
	}

	uc.progress.Begin("Fetching FASTA", len(ids))
	defer uc.progress.End()

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return db, err
		}

		r, err := uc.retriever.Retrieve(ctx, id)
		if err != nil {
			uc.log.Error("fetch.transport", "uniprot_id", id, "error", err)
			return db, fmt.Errorf("fetch %s: %w", id, err)
		}

		if reason := unusableRecord(r); reason != "" {
			db.Failed = append(db.Failed, domain.FetchFailure{
				UniProtID:  id,
				Codes:      codesByID[id],
				Reason:     reason,
				StatusCode: r.StatusCode,
			})
			uc.log.Info("fetch.failed", "uniprot_id", id, "status", r.StatusCode, "reason", reason)
			uc.progress.Advance(id, false)
			continue
		}

		db.Records = append(db.Records, domain.SequenceRecord{
			UniProtID: id,
			FASTA:     r.Body,
			Size:      len(r.Body),
		})
		uc.log.Debug("fetch.id", "uniprot_id", id, "bytes", len(r.Body))
		uc.progress.Advance(id, true)
	}

	return db, nil
}

func unusableRecord(r domain.Retrieval) string {
	switch {
	case !r.Found:
		return fmt.Sprintf("sequence request returned status %d", r.StatusCode)
	case r.Truncated:
		return "sequence response exceeded the body size limit"
	case len(bytes.TrimSpace(r.Body)) == 0:
		return "empty sequence response"
	}
	entries, err := fasta.NewReader(bytes.NewReader(r.Body)).ReadAll()
	switch {
	case err != nil:
		return fmt.Sprintf("response is not FASTA: %v", err)
	case len(entries) == 0:
		return "response is not FASTA: no entries"
	}
	return ""
}
