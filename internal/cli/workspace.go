package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/infra/blast"
	"github.com/guimsilvaa/topufa/internal/infra/config"
	"github.com/guimsilvaa/topufa/internal/infra/httpclient"
	"github.com/guimsilvaa/topufa/internal/infra/httpretriever"
	"github.com/guimsilvaa/topufa/internal/infra/inputfile"
	"github.com/guimsilvaa/topufa/internal/infra/reportfs"
	"github.com/guimsilvaa/topufa/internal/infra/runstore"
	"github.com/guimsilvaa/topufa/internal/infra/workspacefinder"
	"github.com/guimsilvaa/topufa/internal/ports"
	"github.com/guimsilvaa/topufa/internal/usecase"
)

// workspaceCtx is the resolved configuration a command runs with.
// root is empty when no topufa.yaml was found; defaults apply then.
type workspaceCtx struct {
	root string
	wd   string
	cfg  domain.Config
}

func loadWorkspace(configFlag string) (*workspaceCtx, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	if p := strings.TrimSpace(configFlag); p != "" {
		abs := resolvePath(wd, p)
		cfg, err := config.Load(abs)
		if err != nil {
			return nil, err
		}
		return &workspaceCtx{root: filepath.Dir(abs), wd: wd, cfg: cfg}, nil
	}

	root, cfg, err := workspacefinder.Resolve(wd)
	if err != nil {
		return nil, err
	}
	return &workspaceCtx{root: root, wd: wd, cfg: cfg}, nil
}

// outputDir picks the flag, then the configured directory (relative to the
// workspace root), then the working directory.
func (ws *workspaceCtx) outputDir(flag string) string {
	if f := strings.TrimSpace(flag); f != "" {
		return resolvePath(ws.wd, f)
	}
	if ws.root != "" {
		return resolvePath(ws.root, ws.cfg.Paths.OutputDir)
	}
	return resolvePath(ws.wd, ws.cfg.Paths.OutputDir)
}

type pipelineOptions struct {
	outDir    string
	noSave    bool
	skipAlign bool
	progress  ports.Progress
	log       *slog.Logger
}

func (ws *workspaceCtx) newValidator() *usecase.ValidateInputs {
	files := inputfile.New()
	return usecase.NewValidateInputs(files, files)
}

func (ws *workspaceCtx) newAligner(log *slog.Logger) *blast.Runner {
	return blast.New(ws.cfg.Blast, blast.WithLogger(log))
}

func (ws *workspaceCtx) newPipeline(o pipelineOptions) *usecase.RunPipeline {
	cfg := ws.cfg

	exec := httpclient.NewExecutor(
		httpclient.WithClient(httpclient.New(httpclient.FromSettings(cfg.HTTP))),
		httpclient.WithTimeout(cfg.HTTP.Timeout),
		httpclient.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
	)
	retrieverOpts := func(accept string) []httpretriever.Option {
		return []httpretriever.Option{
			httpretriever.WithAccept(accept),
			httpretriever.WithRetries(cfg.HTTP.Retries),
			httpretriever.WithRetryWait(cfg.HTTP.RetryWait),
			httpretriever.WithLogger(o.log),
		}
	}
	mapping := httpretriever.New(exec, cfg.Endpoints.MappingURL, "code", retrieverOpts("application/json")...)
	sequences := httpretriever.New(exec, cfg.Endpoints.SequenceURL, "id", retrieverOpts("text/plain")...)

	stageOpts := []usecase.Option{usecase.WithProgress(o.progress), usecase.WithLogger(o.log)}

	var aligner ports.Aligner
	if !o.skipAlign {
		aligner = ws.newAligner(o.log)
	}

	var store ports.ArtifactStore
	if !o.noSave {
		store = runstore.NewJSONStore(o.outDir, cfg, runstore.WithIndex(true))
	}

	return usecase.NewRunPipeline(
		ws.newValidator(),
		usecase.NewResolveIDs(mapping, cfg.Endpoints.MappingPath, stageOpts...),
		usecase.NewFetchSequences(sequences, stageOpts...),
		reportfs.New(o.outDir, cfg.Outputs),
		aligner,
		store,
		usecase.WithAlignmentReportName(cfg.Outputs.Alignment),
		usecase.WithPipelineLogger(o.log),
	)
}

// resolvePath makes p absolute against base.
func resolvePath(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return filepath.Clean(base)
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
