package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/guimsilvaa/topufa/internal/domain"
)

// Load reads a topufa.yaml file. An empty file yields the defaults.
func Load(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, dto)
}
