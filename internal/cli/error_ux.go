package cli

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/infra/blast"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage turns an error into a one-line message for the terminal.
// The full error still goes to the log file.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return "Cancelled"
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			switch {
			case strings.HasPrefix(oe.Op, "blast."):
				return "Tool not found: " + pathOr(oe.Path, "BLAST+")
			case strings.HasPrefix(oe.Op, "workspacefinder."):
				return "Workspace not found (run topufa init)"
			case strings.HasPrefix(oe.Op, "inputfile.query"):
				return "Query file not found: " + pathOr(oe.Path, "?")
			}
			return "File not found: " + pathOr(oe.Path, "?")

		case domain.KindInvalidInput:
			if strings.HasPrefix(oe.Op, "inputfile.query") {
				if errors.Is(err, domain.ErrUnsupportedInput) {
					return "Unsupported query file " + filepath.Base(oe.Path) + " (expected .fasta, .fa, .faa, .fas or .txt)"
				}
				return "Invalid query file " + filepath.Base(oe.Path)
			}
			if errors.Is(err, domain.ErrUnsupportedInput) {
				return "Unsupported input file " + filepath.Base(oe.Path) + " (expected .txt or .csv)"
			}
			return "Invalid input " + filepath.Base(oe.Path)

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}
			if line := extractLine(err.Error()); line != "" {
				return "Invalid YAML at " + base + " line " + line
			}
			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config: " + innermost(err)

		case domain.KindTransport:
			return "Network error contacting " + hostOf(oe.Path) + " (" + string(domain.ClassifyRunError(err)) + ")"

		case domain.KindToolFailed:
			var te *blast.ToolError
			if errors.As(err, &te) {
				return te.Error()
			}
			return "External tool failed"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		if line := extractLine(err.Error()); line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}
	return "Unexpected error (see logs)"
}

func pathOr(p, fallback string) string {
	if strings.TrimSpace(p) == "" {
		return fallback
	}
	return p
}

func hostOf(rawURL string) string {
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "remote service"
	}
	return s
}

func innermost(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
