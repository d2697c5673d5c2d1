package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/guimsilvaa/topufa/internal/domain"
)

func extractCmd(g *globalFlags) *cobra.Command {
	var input string
	var all bool
	var format string

	c := &cobra.Command{
		Use:   "extract",
		Short: "Print the PDB codes found in an input file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(g.config)
			if err != nil {
				return err
			}

			summary, err := ws.newValidator().Execute(cmd.Context(), resolvePath(ws.wd, input), "")
			if err != nil {
				return err
			}

			codes := summary.Unique
			if all {
				codes = summary.Extracted
			}
			return printCodes(os.Stdout, codes, format)
		},
	}

	c.Flags().StringVarP(&input, "input", "i", "", "Text or CSV file holding PDB codes (required)")
	c.Flags().BoolVar(&all, "all", false, "Print every occurrence in input order instead of the unique set")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	_ = c.MarkFlagRequired("input")
	return c
}

func printCodes(w io.Writer, codes []domain.Code, format string) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(domain.CodeStrings(codes))
	}
	for _, c := range codes {
		fmt.Fprintln(w, c)
	}
	return nil
}
