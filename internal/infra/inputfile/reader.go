// Package inputfile reads the PDB code input and checks the alignment query.
package inputfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/TuftsBCB/io/fasta"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/ports"
)

// ErrNoEntries is returned by ValidateQuery when the file holds no FASTA entry.
var ErrNoEntries = errors.New("no FASTA entries")

var queryExts = map[string]bool{
	".fasta": true,
	".fa":    true,
	".faa":   true,
	".fas":   true,
	".txt":   true,
}

type Reader struct{}

func New() *Reader { return &Reader{} }

var (
	_ ports.InputReader    = (*Reader)(nil)
	_ ports.QueryValidator = (*Reader)(nil)
)

// ReadText returns the text codes are extracted from. A .txt file is read
// whole; for a .csv file the first column of every non-empty row is joined
// with single spaces.
func (r *Reader) ReadText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".txt" && ext != ".csv" {
		return "", &domain.OpError{
			Op:   "inputfile.read",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("%w: want .txt or .csv", domain.ErrUnsupportedInput),
		}
	}

	f, err := open("inputfile.read", path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if ext == ".txt" {
		b, err := io.ReadAll(f)
		if err != nil {
			return "", &domain.OpError{Op: "inputfile.read", Kind: domain.KindExecution, Path: path, Err: err}
		}
		return string(b), nil
	}

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var first []string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", &domain.OpError{Op: "inputfile.read", Kind: domain.KindInvalidInput, Path: path, Err: err}
		}
		if len(row) > 0 {
			first = append(first, row[0])
		}
	}
	return strings.Join(first, " "), nil
}

// ValidateQuery checks that path has a supported extension and holds at least
// one FASTA entry. It returns the number of entries.
func (r *Reader) ValidateQuery(path string) (int, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !queryExts[ext] {
		return 0, &domain.OpError{
			Op:   "inputfile.query",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("%w: want one of .fasta .fa .faa .fas .txt", domain.ErrUnsupportedInput),
		}
	}

	f, err := open("inputfile.query", path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	entries, err := fasta.NewReader(f).ReadAll()
	if err != nil {
		return 0, &domain.OpError{Op: "inputfile.query", Kind: domain.KindInvalidInput, Path: path, Err: err}
	}
	if len(entries) == 0 {
		return 0, &domain.OpError{Op: "inputfile.query", Kind: domain.KindInvalidInput, Path: path, Err: ErrNoEntries}
	}
	return len(entries), nil
}

func open(op, path string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, &domain.OpError{Op: op, Kind: domain.KindNotFound, Path: path, Err: domain.ErrNotFound}
	}
	return nil, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: path, Err: err}
}
