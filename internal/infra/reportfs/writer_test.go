package reportfs

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/guimsilvaa/topufa/internal/domain"
)

func sampleReport() domain.Report {
	var res domain.ResolutionResult
	res.Add("1abc", "P12345", nil)
	res.Add("3def", "P12345", nil)
	res.Fail("2xyz", "no identifier found", 200)

	return domain.Report{
		UniqueCodes: []domain.Code{"1abc", "2xyz", "3def"},
		Resolution:  res,
		Database: domain.SequenceDatabase{
			Records: []domain.SequenceRecord{
				{UniProtID: "P12345", FASTA: []byte(">sp|P12345|A\nMKV\n")},
				{UniProtID: "Q1", FASTA: []byte(">sp|Q1|B\nGGG")},
			},
			Failed: []domain.FetchFailure{
				{UniProtID: "P99999", Codes: []domain.Code{"4aaa", "5bbb"}, Reason: "sequence request returned status 404"},
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func assertRows(t *testing.T, path string, want [][]string) {
	t.Helper()
	if got := readCSV(t, path); !reflect.DeepEqual(got, want) {
		t.Fatalf("%s:\n got  %q\n want %q", filepath.Base(path), got, want)
	}
}

func TestWriteReports_AllFiles(t *testing.T) {
	dir := t.TempDir()
	files, err := New(dir, domain.OutputsConfig{}).WriteReports(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertRows(t, files.ResolvedPairs, [][]string{
		{"Order", "PDB code", "UniProt ID"},
		{"1", "1abc", "P12345"},
		{"2", "3def", "P12345"},
	})
	assertRows(t, files.FailedCodes, [][]string{
		{"PDB code", "UniProt ID"},
		{"2xyz", "Failed to retrieve"},
	})
	assertRows(t, files.UniqueCodes, [][]string{{"1abc", "2xyz", "3def"}})
	assertRows(t, files.UniProtIDs, [][]string{{"P12345", "P12345"}})
	assertRows(t, files.FetchFailures, [][]string{
		{"UniProt ID", "PDB codes", "Reason"},
		{"P99999", "4aaa 5bbb", "sequence request returned status 404"},
	})

	fasta, err := os.ReadFile(files.FASTA)
	if err != nil {
		t.Fatal(err)
	}
	if string(fasta) != ">sp|P12345|A\nMKV\n>sp|Q1|B\nGGG" {
		t.Fatalf("fasta is not the verbatim concatenation: %q", fasta)
	}
	if files.FASTA != filepath.Join(dir, "output_all.fasta") {
		t.Fatalf("unexpected fasta path %q", files.FASTA)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("temporary files left behind: %v", leftovers)
	}
}

func TestWriteReports_Empty(t *testing.T) {
	dir := t.TempDir()
	files, err := New(dir, domain.OutputsConfig{}).WriteReports(domain.Report{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fasta, err := os.ReadFile(files.FASTA)
	if err != nil {
		t.Fatal(err)
	}
	if len(fasta) != 0 {
		t.Fatalf("expected empty fasta, got %q", fasta)
	}

	assertRows(t, files.ResolvedPairs, [][]string{{"Order", "PDB code", "UniProt ID"}})

	b, err := os.ReadFile(files.UniqueCodes)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "\n" {
		t.Fatalf("expected a single empty row, got %q", b)
	}
}

func TestWriteReports_CustomNamesAndNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	files, err := New(dir, domain.OutputsConfig{FASTA: "db.fasta"}).WriteReports(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files.FASTA != filepath.Join(dir, "db.fasta") {
		t.Fatalf("expected custom fasta name, got %q", files.FASTA)
	}
	if files.ResolvedPairs != filepath.Join(dir, "output_full_list.csv") {
		t.Fatalf("expected default name for resolved pairs, got %q", files.ResolvedPairs)
	}
}

func TestWriteReports_UnwritableDir(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New(filepath.Join(blocker, "out"), domain.OutputsConfig{}).WriteReports(sampleReport())
	if err == nil {
		t.Fatal("expected error writing under a regular file")
	}
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected execution kind, got %v", err)
	}
}
