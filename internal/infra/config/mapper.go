package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/guimsilvaa/topufa/internal/domain"
)

// MapConfig applies yc on top of domain.DefaultConfig and validates the result.
func MapConfig(path string, yc YAMLConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	y := yc.Topufa

	set(&cfg.Endpoints.MappingURL, y.Endpoints.MappingURL)
	set(&cfg.Endpoints.MappingPath, y.Endpoints.MappingPath)
	set(&cfg.Endpoints.SequenceURL, y.Endpoints.SequenceURL)

	if !strings.Contains(cfg.Endpoints.MappingURL, "{{code}}") {
		return cfg, invalidField(path, "endpoints.mapping_url", "must contain {{code}}")
	}
	if !strings.Contains(cfg.Endpoints.SequenceURL, "{{id}}") {
		return cfg, invalidField(path, "endpoints.sequence_url", "must contain {{id}}")
	}
	if !strings.HasPrefix(strings.TrimSpace(cfg.Endpoints.MappingPath), "$") {
		return cfg, invalidField(path, "endpoints.mapping_path", "must be a JSONPath starting with $")
	}

	if y.HTTP.Timeout != "" {
		d, err := parseDuration(y.HTTP.Timeout)
		if err != nil {
			return cfg, invalidField(path, "http.timeout", err.Error())
		}
		cfg.HTTP.Timeout = d
	}
	if y.HTTP.RetryWait != "" {
		d, err := parseDuration(y.HTTP.RetryWait)
		if err != nil {
			return cfg, invalidField(path, "http.retry_wait", err.Error())
		}
		cfg.HTTP.RetryWait = d
	}
	if y.HTTP.Retries != nil {
		if *y.HTTP.Retries < 0 {
			return cfg, invalidField(path, "http.retries", "must not be negative")
		}
		cfg.HTTP.Retries = *y.HTTP.Retries
	}
	if y.HTTP.MaxBodyBytes != nil {
		if *y.HTTP.MaxBodyBytes <= 0 {
			return cfg, invalidField(path, "http.max_body_bytes", "must be positive")
		}
		cfg.HTTP.MaxBodyBytes = *y.HTTP.MaxBodyBytes
	}
	set(&cfg.HTTP.UserAgent, y.HTTP.UserAgent)

	set(&cfg.Blast.MakeBlastDB, y.Blast.MakeBlastDB)
	set(&cfg.Blast.BlastP, y.Blast.BlastP)
	set(&cfg.Blast.DBType, y.Blast.DBType)
	set(&cfg.Blast.OutFmt, y.Blast.OutFmt)
	if cfg.Blast.DBType != "prot" && cfg.Blast.DBType != "nucl" {
		return cfg, invalidField(path, "blast.dbtype", fmt.Sprintf("unsupported value %q", cfg.Blast.DBType))
	}

	set(&cfg.Paths.OutputDir, y.Paths.OutputDir)
	set(&cfg.Paths.RunsDir, y.Paths.RunsDir)

	outputs := []struct {
		field string
		dst   *string
		val   string
	}{
		{"outputs.resolved_pairs", &cfg.Outputs.ResolvedPairs, y.Outputs.ResolvedPairs},
		{"outputs.failed_codes", &cfg.Outputs.FailedCodes, y.Outputs.FailedCodes},
		{"outputs.unique_codes", &cfg.Outputs.UniqueCodes, y.Outputs.UniqueCodes},
		{"outputs.uniprot_ids", &cfg.Outputs.UniProtIDs, y.Outputs.UniProtIDs},
		{"outputs.fasta", &cfg.Outputs.FASTA, y.Outputs.FASTA},
		{"outputs.fetch_failures", &cfg.Outputs.FetchFailures, y.Outputs.FetchFailures},
		{"outputs.alignment", &cfg.Outputs.Alignment, y.Outputs.Alignment},
	}
	for _, o := range outputs {
		name := strings.TrimSpace(o.val)
		if name == "" {
			continue
		}
		if filepath.Base(name) != name {
			return cfg, invalidField(path, o.field, "must be a plain file name")
		}
		*o.dst = name
	}

	return cfg, nil
}

func set(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return d, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
