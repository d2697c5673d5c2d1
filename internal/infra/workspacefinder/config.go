package workspacefinder

import (
	"path/filepath"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/infra/config"
)

// LoadConfig loads topufa.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	return config.Load(filepath.Join(root, ConfigFile))
}

// Resolve finds the workspace above startDir and loads its configuration.
// Without a workspace it returns the defaults and an empty root.
func Resolve(startDir string) (string, domain.Config, error) {
	root, err := NewFinder().FindRoot(startDir)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return "", domain.DefaultConfig(), nil
		}
		return "", domain.DefaultConfig(), err
	}
	cfg, err := LoadConfig(root)
	return root, cfg, err
}
