package usecase

import (
	"context"
	"errors"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/ports"
)

// --- fakes shared by the usecase tests ---

// mapRetriever serves bodies from a map; unknown keys are 404s.
type mapRetriever struct {
	bodies map[string]string
	status map[string]int
	errs   map[string]error
	calls  []string
}

func (m *mapRetriever) Retrieve(_ context.Context, key string) (domain.Retrieval, error) {
	m.calls = append(m.calls, key)
	if err := m.errs[key]; err != nil {
		return domain.Retrieval{Key: key}, err
	}
	body, ok := m.bodies[key]
	status := 404
	if ok {
		status = 200
	}
	if s, set := m.status[key]; set {
		status = s
	}
	return domain.Retrieval{
		Key:        key,
		StatusCode: status,
		Body:       []byte(body),
		Found:      status == 200,
	}, nil
}

var _ ports.Retriever = (*mapRetriever)(nil)

type fakeInput struct {
	text string
	err  error
}

func (f fakeInput) ReadText(_ string) (string, error) { return f.text, f.err }

type fakeQuery struct {
	entries int
	err     error
	calls   int
}

func (f *fakeQuery) ValidateQuery(_ string) (int, error) {
	f.calls++
	return f.entries, f.err
}

type fakeReports struct {
	called bool
	last   domain.Report
	err    error
}

func (f *fakeReports) WriteReports(r domain.Report) (domain.ReportFiles, error) {
	f.called = true
	f.last = r
	return domain.ReportFiles{FASTA: "out/output_all.fasta"}, f.err
}

type fakeAligner struct {
	calls int
	last  domain.AlignmentRequest
	err   error
}

func (f *fakeAligner) Align(_ context.Context, req domain.AlignmentRequest) (domain.AlignmentResult, error) {
	f.calls++
	f.last = req
	return domain.AlignmentResult{DatabasePath: req.DatabasePath, ReportPath: req.ReportPath}, f.err
}

type fakeStore struct {
	saved bool
	last  domain.RunResult
}

func (s *fakeStore) SaveRun(run domain.RunResult) (string, error) {
	s.saved = true
	s.last = run
	return "run-123", nil
}

// errStore always fails SaveRun.
type errStore struct{ err error }

func (s *errStore) SaveRun(_ domain.RunResult) (string, error) { return "", s.err }

// recordingProgress captures progress calls.
type recordingProgress struct {
	stages []string
	totals []int
	ok     int
	failed int
	ended  int
}

func (p *recordingProgress) Begin(stage string, total int) {
	p.stages = append(p.stages, stage)
	p.totals = append(p.totals, total)
}

func (p *recordingProgress) Advance(_ string, ok bool) {
	if ok {
		p.ok++
	} else {
		p.failed++
	}
}

func (p *recordingProgress) End() { p.ended++ }

func mapping(code string, ids ...string) string {
	inner := ""
	for i, id := range ids {
		if i > 0 {
			inner += ","
		}
		inner += `"` + id + `":{"name":"x"}`
	}
	return `{"` + code + `":{"UniProt":{` + inner + `}}}`
}

func fastaRecord(id string) string {
	return ">sp|" + id + "|PROT_HUMAN Protein\nMKVLAAGIVG\n"
}

var errBoom = errors.New("boom")

