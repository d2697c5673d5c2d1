package domain

import (
	"context"
	"errors"
	"net"
	"syscall"
	"time"
)

// RunErrorKind is a high-level classification of transport errors.
type RunErrorKind string

const (
	RunErrorUnknown RunErrorKind = "unknown"
	RunErrorTimeout RunErrorKind = "timeout"
	RunErrorDNS     RunErrorKind = "dns"
	RunErrorConn    RunErrorKind = "connection"
	RunErrorHTTP    RunErrorKind = "http"
)

// RunError represents a structured transport error produced by a retriever.
type RunError struct {
	Kind    RunErrorKind `json:"kind"`
	Message string       `json:"message"`
}

// NewRunError classifies err into a RunError. It returns nil for a nil error.
func NewRunError(err error) *RunError {
	if err == nil {
		return nil
	}
	return &RunError{Kind: ClassifyRunError(err), Message: err.Error()}
}

// ClassifyRunError maps transport errors into coarse kinds.
func ClassifyRunError(err error) RunErrorKind {
	if err == nil {
		return RunErrorUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return RunErrorTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return RunErrorDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return RunErrorTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.EPIPE) {
		return RunErrorConn
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return RunErrorConn
	}

	return RunErrorUnknown
}

// Retrieval is the outcome of fetching one key from a remote resource.
// Found is true only for a 200 response.
type Retrieval struct {
	Key        string
	URL        string
	StatusCode int
	Body       []byte
	Truncated  bool
	LatencyMS  int64
	Found      bool
}

// AlignmentRequest names the files handed to the alignment tool.
type AlignmentRequest struct {
	FASTAPath    string
	QueryPath    string
	DatabasePath string
	ReportPath   string
}

// AlignmentResult describes a finished (or skipped) alignment step.
type AlignmentResult struct {
	DatabasePath string `json:"database_path,omitempty"`
	ReportPath   string `json:"report_path,omitempty"`
	Skipped      bool   `json:"skipped"`
	DurationMS   int64  `json:"duration_ms"`
}

// Report bundles every artifact handed to the report writer.
type Report struct {
	UniqueCodes []Code
	Resolution  ResolutionResult
	Database    SequenceDatabase
}

// ReportFiles holds the paths written by the report writer.
type ReportFiles struct {
	ResolvedPairs string `json:"resolved_pairs"`
	FailedCodes   string `json:"failed_codes"`
	UniqueCodes   string `json:"unique_codes"`
	UniProtIDs    string `json:"uniprot_ids"`
	FASTA         string `json:"fasta"`
	FetchFailures string `json:"fetch_failures"`
}

// RunResult is the full outcome of one pipeline run.
type RunResult struct {
	ID        string    `json:"id"`
	InputPath string    `json:"input_path"`
	QueryPath string    `json:"query_path"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	ExtractedCount int    `json:"extracted_count"`
	UniqueCodes    []Code `json:"unique_codes"`

	Resolution ResolutionResult `json:"resolution"`
	Database   SequenceDatabase `json:"database"`

	Files     ReportFiles     `json:"files"`
	Alignment AlignmentResult `json:"alignment"`

	// Error is set when the run stopped early; the fields above are partial.
	Error string `json:"error,omitempty"`
}
