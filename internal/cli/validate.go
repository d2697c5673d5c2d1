package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guimsilvaa/topufa/internal/infra/logger"
)

func validateCmd(g *globalFlags) *cobra.Command {
	var input string
	var query string
	var skipAlign bool

	c := &cobra.Command{
		Use:   "validate",
		Short: "Check config, input and query files and BLAST+ availability (no HTTP)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.config)
			if err != nil {
				return err
			}

			summary, err := ws.newValidator().Execute(cmd.Context(), resolvePath(ws.wd, input), queryPath(ws.wd, query))
			if err != nil {
				return err
			}

			w := os.Stdout
			fmt.Fprintf(w, "input:  %d codes, %d unique\n", len(summary.Extracted), len(summary.Unique))
			if query != "" {
				fmt.Fprintf(w, "query:  %d FASTA entries\n", summary.QueryEntries)
			}

			if !skipAlign {
				if err := ws.newAligner(logger.Component("blast")).Check(); err != nil {
					return err
				}
				fmt.Fprintf(w, "blast:  %s, %s found\n", ws.cfg.Blast.MakeBlastDB, ws.cfg.Blast.BlastP)
			}

			fmt.Fprintln(w, "OK")
			return nil
		},
	}

	c.Flags().StringVarP(&input, "input", "i", "", "Text or CSV file holding PDB codes (required)")
	c.Flags().StringVarP(&query, "query", "q", "", "FASTA file with the blastp query")
	c.Flags().BoolVar(&skipAlign, "skip-align", false, "Do not look for makeblastdb/blastp")

	_ = c.MarkFlagRequired("input")
	return c
}
