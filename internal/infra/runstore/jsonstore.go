package runstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/ports"
)

const defaultRunsDir = "runs"

// JSONStore saves one JSON document per run under <root>/<runs dir>.
type JSONStore struct {
	rootDir     string
	runsDirName string
	writeIndex  bool
	now         func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*JSONStore)(nil)

// SaveRun writes runs/<timestamp>_<input slug>.json and returns its id
// (the file name without extension).
func (s *JSONStore) SaveRun(run domain.RunResult) (string, error) {
	dir := filepath.Join(s.rootDir, s.runsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	if run.StartedAt.IsZero() {
		run.StartedAt = s.now()
	}
	ts := run.StartedAt.UTC()

	slug := slugify(strings.TrimSuffix(filepath.Base(run.InputPath), filepath.Ext(run.InputPath)))
	if slug == "" {
		slug = "run"
	}

	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slug)
	path := filepath.Join(dir, filename)
	// Two runs started in the same second on the same input must not clobber each other.
	for i := 2; fileExists(path); i++ {
		filename = fmt.Sprintf("%s_%s-%d.json", ts.Format("20060102T150405Z"), slug, i)
		path = filepath.Join(dir, filename)
	}
	id := strings.TrimSuffix(filename, ".json")

	b, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filename, run)
	}

	return id, nil
}

func (s *JSONStore) appendIndex(dir, id, filename string, run domain.RunResult) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Input     string    `json:"input"`
		Codes     int       `json:"codes"`
		Resolved  int       `json:"resolved"`
		Failed    int       `json:"failed"`
		Sequences int       `json:"sequences"`
		StartedAt time.Time `json:"started_at"`
		Error     string    `json:"error,omitempty"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      filename,
		Input:     run.InputPath,
		Codes:     len(run.UniqueCodes),
		Resolved:  len(run.Resolution.Resolved),
		Failed:    len(run.Resolution.Failed),
		Sequences: len(run.Database.Records),
		StartedAt: run.StartedAt,
		Error:     run.Error,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
