package usecase

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/ports"
)

// PipelineInput is the explicit configuration of one run.
type PipelineInput struct {
	InputPath string
	QueryPath string
	OutputDir string
	SkipAlign bool
}

type RunPipeline struct {
	inputs   *ValidateInputs
	resolver *ResolveIDs
	fetcher  *FetchSequences
	reports  ports.ReportWriter
	aligner  ports.Aligner
	store    ports.ArtifactStore

	alignmentName string
	newID         func() string
	now           func() time.Time
	log           *slog.Logger
}

type PipelineOption func(*RunPipeline)

// WithAlignmentReportName overrides the alignment report file name.
func WithAlignmentReportName(name string) PipelineOption {
	return func(p *RunPipeline) {
		if name != "" {
			p.alignmentName = name
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *RunPipeline) { p.now = now }
}

// WithIDGenerator is useful for tests.
func WithIDGenerator(gen func() string) PipelineOption {
	return func(p *RunPipeline) { p.newID = gen }
}

func WithPipelineLogger(l *slog.Logger) PipelineOption {
	return func(p *RunPipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// NewRunPipeline wires the stages. aligner and store may be nil: a nil aligner
// skips alignment and a nil store skips the run artifact.
func NewRunPipeline(
	inputs *ValidateInputs,
	resolver *ResolveIDs,
	fetcher *FetchSequences,
	reports ports.ReportWriter,
	aligner ports.Aligner,
	store ports.ArtifactStore,
	opts ...PipelineOption,
) *RunPipeline {
	p := &RunPipeline{
		inputs:        inputs,
		resolver:      resolver,
		fetcher:       fetcher,
		reports:       reports,
		aligner:       aligner,
		store:         store,
		alignmentName: domain.DefaultConfig().Outputs.Alignment,
		newID:         uuid.NewString,
		now:           time.Now,
		log:           slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Execute runs extraction, resolution, fetching, reporting and alignment in order.
// The returned RunResult is populated as far as the run got, even on error.
// The second return value is the saved artifact id ("" when nothing was saved).
func (p *RunPipeline) Execute(ctx context.Context, in PipelineInput) (domain.RunResult, string, error) {
	run := domain.RunResult{
		ID:        p.newID(),
		InputPath: in.InputPath,
		QueryPath: in.QueryPath,
		StartedAt: p.now(),
	}

	p.log.Info("pipeline.start", "run_id", run.ID, "input", in.InputPath, "query", in.QueryPath)

	queryPath := in.QueryPath
	if in.SkipAlign || p.aligner == nil {
		queryPath = ""
	}

	summary, err := p.inputs.Execute(ctx, in.InputPath, queryPath)
	if err != nil {
		// Bad inputs never produce an artifact.
		run.EndedAt = p.now()
		return run, "", err
	}
	run.ExtractedCount = len(summary.Extracted)
	run.UniqueCodes = summary.Unique

	resolution, err := p.resolver.Execute(ctx, summary.Unique)
	run.Resolution = resolution
	if err != nil {
		return p.finish(run, err)
	}

	db, err := p.fetcher.Execute(ctx, resolution)
	run.Database = db
	if err != nil {
		return p.finish(run, err)
	}

	files, err := p.reports.WriteReports(domain.Report{
		UniqueCodes: summary.Unique,
		Resolution:  resolution,
		Database:    db,
	})
	run.Files = files
	if err != nil {
		return p.finish(run, err)
	}

	if in.SkipAlign || p.aligner == nil {
		run.Alignment = domain.AlignmentResult{Skipped: true}
		return p.finish(run, nil)
	}

	if err := ctx.Err(); err != nil {
		return p.finish(run, err)
	}

	alignment, err := p.aligner.Align(ctx, domain.AlignmentRequest{
		FASTAPath:    files.FASTA,
		QueryPath:    in.QueryPath,
		DatabasePath: files.FASTA,
		ReportPath:   filepath.Join(in.OutputDir, p.alignmentName),
	})
	run.Alignment = alignment
	return p.finish(run, err)
}

func (p *RunPipeline) finish(run domain.RunResult, runErr error) (domain.RunResult, string, error) {
	run.EndedAt = p.now()
	if runErr != nil {
		run.Error = runErr.Error()
		p.log.Error("pipeline.failed", "run_id", run.ID, "error", runErr)
	} else {
		p.log.Info("pipeline.done",
			"run_id", run.ID,
			"unique_codes", len(run.UniqueCodes),
			"resolved", len(run.Resolution.Resolved),
			"failed", len(run.Resolution.Failed),
			"sequences", len(run.Database.Records),
		)
	}

	if p.store == nil {
		return run, "", runErr
	}

	id, err := p.store.SaveRun(run)
	if err != nil {
		p.log.Error("pipeline.save_failed", "run_id", run.ID, "error", err)
		if runErr == nil {
			runErr = err
		}
		return run, "", runErr
	}
	return run, id, runErr
}
