package inputfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/guimsilvaa/topufa/internal/domain"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestReadText_TXT(t *testing.T) {
	p := write(t, "in.txt", "see 1ABC\nand 2xyz")
	got, err := New().ReadText(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "see 1ABC\nand 2xyz" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestReadText_CSVFirstColumn(t *testing.T) {
	p := write(t, "in.csv", "1abc,foo\n\n2xyz,\"bar, baz\"\n3def\n")
	got, err := New().ReadText(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1abc 2xyz 3def" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestReadText_UppercaseExtension(t *testing.T) {
	p := write(t, "IN.TXT", "1abc")
	if _, err := New().ReadText(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadText_Errors(t *testing.T) {
	_, err := New().ReadText(filepath.Join(t.TempDir(), "missing.txt"))
	if !domain.IsKind(err, domain.KindNotFound) || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}

	p := write(t, "in.pdf", "1abc")
	_, err = New().ReadText(p)
	if !domain.IsKind(err, domain.KindInvalidInput) || !errors.Is(err, domain.ErrUnsupportedInput) {
		t.Fatalf("expected unsupported input, got %v", err)
	}
}

func TestValidateQuery(t *testing.T) {
	p := write(t, "q.fasta", ">q1 first\nMKV\nlaa\n\n>q2\nGGA")
	n, err := New().ValidateQuery(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 entries, got %d", n)
	}
}

func TestValidateQuery_Errors(t *testing.T) {
	cases := []struct {
		name string
		file string
		body string
		kind domain.ErrorKind
	}{
		{"bad extension", "q.pdb", ">q\nMK\n", domain.KindInvalidInput},
		{"empty", "q.fa", "", domain.KindInvalidInput},
		{"no header", "q.faa", "MKV\n", domain.KindInvalidInput},
		{"digits in sequence", "q.fas", ">q\nMK1V\n", domain.KindInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := write(t, tc.file, tc.body)
			_, err := New().ValidateQuery(p)
			if !domain.IsKind(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
		})
	}

	_, err := New().ValidateQuery(filepath.Join(t.TempDir(), "missing.fasta"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}

	p := write(t, "empty.fas", "\n\n")
	_, err = New().ValidateQuery(p)
	if !errors.Is(err, ErrNoEntries) {
		t.Fatalf("expected ErrNoEntries, got %v", err)
	}
}
