// Package blast runs the BLAST+ command line tools: makeblastdb to index the
// downloaded sequences and blastp to align the query against them.
package blast

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/cli/safeexec"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/ports"
)

const maxStderr = 16 << 10

type Runner struct {
	cfg domain.BlastConfig
	log *slog.Logger

	lookPath func(string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

type Option func(*Runner)

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

func New(cfg domain.BlastConfig, opts ...Option) *Runner {
	def := domain.DefaultConfig().Blast
	if cfg.MakeBlastDB == "" {
		cfg.MakeBlastDB = def.MakeBlastDB
	}
	if cfg.BlastP == "" {
		cfg.BlastP = def.BlastP
	}
	if cfg.DBType == "" {
		cfg.DBType = def.DBType
	}
	if cfg.OutFmt == "" {
		cfg.OutFmt = def.OutFmt
	}

	r := &Runner{
		cfg:      cfg,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		lookPath: safeexec.LookPath,
		command:  exec.CommandContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.Aligner = (*Runner)(nil)

// Check reports whether both programs can be found.
func (r *Runner) Check() error {
	for _, name := range []string{r.cfg.MakeBlastDB, r.cfg.BlastP} {
		if _, err := r.locate(name); err != nil {
			return err
		}
	}
	return nil
}

// Align indexes req.FASTAPath into req.DatabasePath and runs blastp with
// req.QueryPath against it. The database is built even when the FASTA file
// is empty; makeblastdb decides what that means.
func (r *Runner) Align(ctx context.Context, req domain.AlignmentRequest) (domain.AlignmentResult, error) {
	start := time.Now()
	db := req.DatabasePath
	if db == "" {
		db = req.FASTAPath
	}
	out := domain.AlignmentResult{DatabasePath: db, ReportPath: req.ReportPath}

	if dir := filepath.Dir(req.ReportPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return out, &domain.OpError{Op: "blast.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
		}
	}

	err := r.run(ctx, r.cfg.MakeBlastDB,
		"-in", req.FASTAPath,
		"-dbtype", r.cfg.DBType,
		"-out", db,
	)
	if err != nil {
		out.DurationMS = time.Since(start).Milliseconds()
		return out, err
	}

	err = r.run(ctx, r.cfg.BlastP,
		"-query", req.QueryPath,
		"-db", db,
		"-out", req.ReportPath,
		"-outfmt", r.cfg.OutFmt,
	)
	out.DurationMS = time.Since(start).Milliseconds()
	return out, err
}

func (r *Runner) locate(name string) (string, error) {
	path, err := r.lookPath(name)
	if err != nil {
		return "", &domain.OpError{
			Op:   "blast.lookpath",
			Kind: domain.KindNotFound,
			Path: name,
			Err:  fmt.Errorf("%w: %s is not installed or not on PATH", domain.ErrNotFound, filepath.Base(name)),
		}
	}
	return path, nil
}

func (r *Runner) run(ctx context.Context, name string, args ...string) error {
	path, err := r.locate(name)
	if err != nil {
		return err
	}

	var stdout, stderr bytes.Buffer
	cmd := r.command(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &limitedBuffer{buf: &stderr, max: maxStderr}

	tool := filepath.Base(name)
	r.log.Info("blast.exec", "tool", tool, "args", args)
	start := time.Now()
	err = cmd.Run()
	r.log.Debug("blast.done", "tool", tool, "duration_ms", time.Since(start).Milliseconds(), "stdout_bytes", stdout.Len())

	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &domain.OpError{Op: "blast." + tool, Kind: domain.KindExecution, Path: path, Err: ctxErr}
	}

	te := newToolError(tool, args, stderr.String(), err)
	r.log.Error("blast.failed", "tool", tool, "exit_code", te.ExitCode, "stderr", te.Stderr)
	return &domain.OpError{
		Op:   "blast." + tool,
		Kind: domain.KindToolFailed,
		Path: path,
		Err:  fmt.Errorf("%w: %w", domain.ErrToolFailed, te),
	}
}

// limitedBuffer keeps the first max bytes written and discards the rest.
type limitedBuffer struct {
	buf *bytes.Buffer
	max int
}

func (l *limitedBuffer) Write(p []byte) (int, error) {
	if room := l.max - l.buf.Len(); room > 0 {
		if len(p) > room {
			l.buf.Write(p[:room])
		} else {
			l.buf.Write(p)
		}
	}
	return len(p), nil
}
