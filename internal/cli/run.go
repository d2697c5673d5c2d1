package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/infra/inputfile"
	"github.com/guimsilvaa/topufa/internal/infra/logger"
	"github.com/guimsilvaa/topufa/internal/ui/progress"
	"github.com/guimsilvaa/topufa/internal/ui/tui"
	"github.com/guimsilvaa/topufa/internal/usecase"
)

func runCmd(g *globalFlags) *cobra.Command {
	var input string
	var query string
	var outputDir string
	var skipAlign bool
	var noSave bool
	var format string

	c := &cobra.Command{
		Use:   "run",
		Short: "Resolve PDB codes to UniProt sequences, write reports and run blastp",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(g.config)
			if err != nil {
				return err
			}

			paths, err := completePaths(tui.Paths{Input: input, Query: query}, !skipAlign, format)
			if err != nil {
				return err
			}

			outDir := ws.outputDir(outputDir)
			log := logger.Component("pipeline")

			uc := ws.newPipeline(pipelineOptions{
				outDir:    outDir,
				noSave:    noSave,
				skipAlign: skipAlign,
				progress:  progress.New(os.Stderr, isTerminal(os.Stderr)),
				log:       log,
			})

			run, runID, err := uc.Execute(cmd.Context(), usecase.PipelineInput{
				InputPath: resolvePath(ws.wd, paths.Input),
				QueryPath: queryPath(ws.wd, paths.Query),
				OutputDir: outDir,
				SkipAlign: skipAlign,
			})
			if err != nil {
				// Error is only set once the inputs were accepted.
				if run.Error != "" {
					_ = printRun(os.Stdout, run, runID, format)
				}
				return err
			}
			return printRun(os.Stdout, run, runID, format)
		},
	}

	c.Flags().StringVarP(&input, "input", "i", "", "Text or CSV file holding PDB codes")
	c.Flags().StringVarP(&query, "query", "q", "", "FASTA file with the blastp query")
	c.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for reports (default from topufa.yaml)")
	c.Flags().BoolVar(&skipAlign, "skip-align", false, "Write reports only; do not run makeblastdb/blastp")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save run artifact under runs/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	return c
}

// completePaths fills missing paths interactively when stdin is a terminal.
func completePaths(have tui.Paths, needQuery bool, format string) (tui.Paths, error) {
	missingInput := strings.TrimSpace(have.Input) == ""
	missingQuery := needQuery && strings.TrimSpace(have.Query) == ""
	if !missingInput && !missingQuery {
		return have, nil
	}

	if format != "json" && isTerminal(os.Stdin) {
		files := inputfile.New()
		got, err := tui.AskPaths(tui.Deps{
			CheckInput: func(p string) error {
				_, err := files.ReadText(p)
				return err
			},
			CheckQuery: func(p string) error {
				_, err := files.ValidateQuery(p)
				return err
			},
			Logger: logger.Component("prompt"),
		}, have, needQuery)
		if errors.Is(err, tui.ErrCancelled) {
			return have, &domain.OpError{Op: "cli.prompt", Kind: domain.KindExecution, Err: err}
		}
		return got, err
	}

	flag := "--input"
	if !missingInput {
		flag = "--query"
	}
	return have, &domain.OpError{
		Op:   "cli.flags",
		Kind: domain.KindInvalidInput,
		Err:  fmt.Errorf("%s is required", flag),
	}
}

func queryPath(wd, p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	return resolvePath(wd, p)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func checkFormat(format string) error {
	switch format {
	case "pretty", "json", "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printRun(w io.Writer, run domain.RunResult, runID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"run_id": runID,
			"run":    run,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyRun(w, run, runID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func printPrettyRun(w io.Writer, run domain.RunResult, runID string) {
	total := run.EndedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Input:   "), run.InputPath)
	if run.QueryPath != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Query:   "), run.QueryPath)
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Started: "), run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Duration:"), total.Round(time.Millisecond))
	if runID != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Run ID:  "), runID)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Codes:     %d extracted, %d unique\n", run.ExtractedCount, len(run.UniqueCodes))
	fmt.Fprintf(w, "UniProt:   %s resolved, %s failed\n",
		okStyle.Render(fmt.Sprint(len(run.Resolution.Resolved))),
		countStyle(len(run.Resolution.Failed)).Render(fmt.Sprint(len(run.Resolution.Failed))))
	fmt.Fprintf(w, "Sequences: %s fetched, %s failed\n",
		okStyle.Render(fmt.Sprint(len(run.Database.Records))),
		countStyle(len(run.Database.Failed)).Render(fmt.Sprint(len(run.Database.Failed))))

	for _, f := range run.Resolution.Failed {
		fmt.Fprintf(w, "  - %s: %s\n", f.Code, f.Reason)
	}
	for _, f := range run.Database.Failed {
		fmt.Fprintf(w, "  - %s: %s\n", f.UniProtID, f.Reason)
	}
	fmt.Fprintln(w)

	files := []struct{ label, path string }{
		{"resolved pairs", run.Files.ResolvedPairs},
		{"failed codes", run.Files.FailedCodes},
		{"unique codes", run.Files.UniqueCodes},
		{"uniprot ids", run.Files.UniProtIDs},
		{"fasta", run.Files.FASTA},
		{"fetch failures", run.Files.FetchFailures},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		fmt.Fprintf(w, "%s wrote %s (%s)\n", okStyle.Render("✓"), f.path, f.label)
	}

	switch {
	case run.Alignment.Skipped:
		fmt.Fprintln(w, "alignment skipped")
	case run.Alignment.ReportPath != "" && run.Error == "":
		fmt.Fprintf(w, "%s wrote %s (blastp, %dms)\n", okStyle.Render("✓"), run.Alignment.ReportPath, run.Alignment.DurationMS)
	}

	if run.Error != "" {
		fmt.Fprintf(w, "%s %s\n", failStyle.Render("✗"), run.Error)
	}
}

func countStyle(n int) lipgloss.Style {
	if n > 0 {
		return failStyle
	}
	return okStyle
}
