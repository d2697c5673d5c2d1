package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guimsilvaa/topufa/internal/domain"
)

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := t.TempDir()

	content := []byte("topufa:\n  http:\n    timeout: 10s\n")
	if err := os.WriteFile(filepath.Join(root, "topufa.yaml"), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.HTTP.Timeout != 10*time.Second {
		t.Fatalf("expected timeout=10s, got=%s", cfg.HTTP.Timeout)
	}
	if cfg.Paths.RunsDir != "runs" {
		t.Fatalf("expected runs dir=runs, got=%s", cfg.Paths.RunsDir)
	}
	if cfg.Blast.BlastP != "blastp" {
		t.Fatalf("expected blastp default, got=%s", cfg.Blast.BlastP)
	}
}

func TestResolve_NoWorkspaceUsesDefaults(t *testing.T) {
	root, cfg, err := Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if root != "" {
		t.Fatalf("expected empty root, got %s", root)
	}
	if cfg != domain.DefaultConfig() {
		t.Fatalf("expected defaults")
	}
}

func TestResolve_InvalidConfigFails(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "topufa.yaml"), []byte("topufa:\n  blast:\n    dbtype: rna\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err := Resolve(root)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}
