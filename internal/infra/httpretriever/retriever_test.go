package httpretriever

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/infra/httpclient"
)

func newExec() *httpclient.Executor {
	return httpclient.NewExecutor(httpclient.WithMaxBodyBytes(256))
}

func noSleep(r *Retriever) { r.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() } }

func TestRetrieve_Found(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mappings/uniprot/1abc" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("expected Accept header")
		}
		_, _ = w.Write([]byte(`{"1abc":{"UniProt":{"P1":{}}}}`))
	}))
	defer srv.Close()

	r := New(newExec(), srv.URL+"/mappings/uniprot/{{code}}", "code", WithAccept("application/json"))
	res, err := r.Retrieve(context.Background(), "1abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found || res.StatusCode != 200 {
		t.Fatalf("expected found 200, got %+v", res)
	}
	if !strings.Contains(string(res.Body), "P1") {
		t.Fatalf("unexpected body %q", res.Body)
	}
	if res.Key != "1abc" || !strings.HasSuffix(res.URL, "/1abc") {
		t.Fatalf("unexpected key/url %q %q", res.Key, res.URL)
	}
}

func TestRetrieve_NotFoundIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "{}", http.StatusNotFound)
	}))
	defer srv.Close()

	res, err := New(newExec(), srv.URL+"/{{id}}.fasta", "id").Retrieve(context.Background(), "XXXX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found || res.StatusCode != 404 {
		t.Fatalf("expected 404 not found, got %+v", res)
	}
}

func TestRetrieve_EscapesKey(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.EscapedPath()
	}))
	defer srv.Close()

	if _, err := New(newExec(), srv.URL+"/{{id}}", "id").Retrieve(context.Background(), "a/b c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != "/a%2Fb%20c" {
		t.Fatalf("expected escaped path, got %s", raw)
	}
}

func TestRetrieve_TruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("A", 1000)))
	}))
	defer srv.Close()

	res, err := New(newExec(), srv.URL+"/{{id}}", "id").Retrieve(context.Background(), "P1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Truncated || len(res.Body) != 256 {
		t.Fatalf("expected truncated 256 bytes, got truncated=%v len=%d", res.Truncated, len(res.Body))
	}
}

func TestRetrieve_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(">sp|P1|X\nMK\n"))
	}))
	defer srv.Close()

	r := New(newExec(), srv.URL+"/{{id}}", "id", WithRetries(2), noSleep)
	res, err := r.Retrieve(context.Background(), "P1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Fatalf("expected success after retries, got %+v", res)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
}

func TestRetrieve_NoRetryByDefault(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	res, err := New(newExec(), srv.URL+"/{{id}}", "id").Retrieve(context.Background(), "P1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found || res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %+v", res)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestRetrieve_TransportErrorIsClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	exec := httpclient.NewExecutor(httpclient.WithTimeout(30 * time.Millisecond))
	_, err := New(exec, srv.URL+"/{{id}}", "id").Retrieve(context.Background(), "P1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindTransport) {
		t.Fatalf("expected transport kind, got %v", err)
	}
	if k := domain.ClassifyRunError(err); k != domain.RunErrorTimeout {
		t.Fatalf("expected timeout, got %s", k)
	}
}

func TestRetrieve_TemplateWithoutVariable(t *testing.T) {
	_, err := New(newExec(), "http://example.org/{{code}}", "id").Retrieve(context.Background(), "P1")
	if !errors.Is(err, domain.ErrMissingVar) {
		t.Fatalf("expected missing var error, got %v", err)
	}
}
