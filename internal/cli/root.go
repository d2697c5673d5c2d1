package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guimsilvaa/topufa/internal/infra/logger"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError prints the short message and, when a log file is open, where
// the full error went.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", userMessage(err))
	if logger.IsReady() != nil {
		return
	}
	logger.L().Error("command.failed", "error", err.Error())
	fmt.Fprintln(w, "Details:", logger.Path())
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	debug  bool
	config string
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	var cleanup func() error

	cmd := &cobra.Command{
		Use:           "topufa",
		Short:         "Map PDB codes to UniProt sequences and align them with BLAST+",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			root := "."
			if ws, err := loadWorkspace(g.config); err == nil {
				root = ws.wd
				if ws.root != "" {
					root = ws.root
				}
			}
			c, err := logger.Setup(logger.Config{Root: root, Debug: g.debug})
			if err != nil {
				// Logging is best effort; commands still run without a log file.
				return nil
			}
			cleanup = c
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if cleanup != nil {
				_ = cleanup()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging to .topufa/logs/topufa.log")
	cmd.PersistentFlags().StringVarP(&g.config, "config", "c", "", "path to topufa.yaml (autodetected if omitted)")

	cmd.AddCommand(
		runCmd(&g),
		validateCmd(&g),
		extractCmd(&g),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
