// Package reportfs writes the tabular and FASTA reports of a run to disk.
package reportfs

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/ports"
)

type Writer struct {
	dir   string
	names domain.OutputsConfig
}

// New returns a Writer for dir. Empty names fall back to the defaults.
func New(dir string, names domain.OutputsConfig) *Writer {
	def := domain.DefaultConfig().Outputs
	pick := func(v, d string) string {
		if strings.TrimSpace(v) == "" {
			return d
		}
		return v
	}
	return &Writer{
		dir: dir,
		names: domain.OutputsConfig{
			ResolvedPairs: pick(names.ResolvedPairs, def.ResolvedPairs),
			FailedCodes:   pick(names.FailedCodes, def.FailedCodes),
			UniqueCodes:   pick(names.UniqueCodes, def.UniqueCodes),
			UniProtIDs:    pick(names.UniProtIDs, def.UniProtIDs),
			FASTA:         pick(names.FASTA, def.FASTA),
			FetchFailures: pick(names.FetchFailures, def.FetchFailures),
			Alignment:     pick(names.Alignment, def.Alignment),
		},
	}
}

var _ ports.ReportWriter = (*Writer)(nil)

// WriteReports writes every report file and returns their paths.
// It stops at the first file that cannot be written.
func (w *Writer) WriteReports(r domain.Report) (domain.ReportFiles, error) {
	var files domain.ReportFiles

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return files, &domain.OpError{Op: "reportfs.mkdir", Kind: domain.KindExecution, Path: w.dir, Err: err}
	}

	pairs := [][]string{{"Order", "PDB code", "UniProt ID"}}
	for _, res := range r.Resolution.Resolved {
		pairs = append(pairs, []string{strconv.Itoa(res.Order), string(res.Code), res.UniProtID})
	}

	failed := [][]string{{"PDB code", "UniProt ID"}}
	for _, c := range r.Resolution.FailedCodes() {
		failed = append(failed, []string{string(c), domain.FailedMarker})
	}

	unique := make([]string, 0, len(r.UniqueCodes))
	for _, c := range r.UniqueCodes {
		unique = append(unique, string(c))
	}

	fetchFailed := [][]string{{"UniProt ID", "PDB codes", "Reason"}}
	for _, f := range r.Database.Failed {
		codes := make([]string, 0, len(f.Codes))
		for _, c := range f.Codes {
			codes = append(codes, string(c))
		}
		fetchFailed = append(fetchFailed, []string{f.UniProtID, strings.Join(codes, " "), f.Reason})
	}

	steps := []struct {
		name string
		dst  *string
		data func() ([]byte, error)
	}{
		{w.names.ResolvedPairs, &files.ResolvedPairs, func() ([]byte, error) { return encodeCSV(pairs) }},
		{w.names.FailedCodes, &files.FailedCodes, func() ([]byte, error) { return encodeCSV(failed) }},
		{w.names.UniqueCodes, &files.UniqueCodes, func() ([]byte, error) { return encodeCSV([][]string{unique}) }},
		{w.names.UniProtIDs, &files.UniProtIDs, func() ([]byte, error) { return encodeCSV([][]string{r.Resolution.IDs()}) }},
		{w.names.FASTA, &files.FASTA, func() ([]byte, error) { return r.Database.Bytes(), nil }},
		{w.names.FetchFailures, &files.FetchFailures, func() ([]byte, error) { return encodeCSV(fetchFailed) }},
	}

	for _, s := range steps {
		path := filepath.Join(w.dir, s.name)
		b, err := s.data()
		if err != nil {
			return files, &domain.OpError{Op: "reportfs.encode", Kind: domain.KindExecution, Path: path, Err: err}
		}
		if err := writeAtomic(path, b); err != nil {
			return files, err
		}
		*s.dst = path
	}

	return files, nil
}

// encodeCSV renders rows; a single empty row becomes an empty line.
func encodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	for _, row := range rows {
		if len(row) == 0 {
			buf.WriteByte('\n')
			continue
		}
		if err := cw.Write(row); err != nil {
			return nil, err
		}
		cw.Flush()
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// writeAtomic writes b next to path and renames it into place.
func writeAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return &domain.OpError{Op: "reportfs.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "reportfs.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}
