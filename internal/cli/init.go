package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/guimsilvaa/topufa/internal/buildinfo"
	"github.com/guimsilvaa/topufa/internal/infra/fsworkspace"
	"github.com/guimsilvaa/topufa/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a topufa workspace (topufa.yaml, inputs/, runs/)",
		RunE: func(_ *cobra.Command, _ []string) error {
			root, err := resolveWorkspaceRoot(path)
			if err != nil {
				return err
			}
			if err := usecase.NewInitWorkspace(fsworkspace.NewInitializer()).Execute(root, force); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Initialized workspace at %s\n", root)
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", ".", "Directory to initialize")
	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing template files")
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

func resolveWorkspaceRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}
