// Package httpretriever fetches documents from REST endpoints addressed by a
// URL template such as "https://rest.uniprot.org/uniprotkb/{{id}}.fasta".
package httpretriever

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/infra/httpclient"
	"github.com/guimsilvaa/topufa/internal/ports"
)

type Retriever struct {
	exec      *httpclient.Executor
	template  string
	varName   string
	accept    string
	retries   int
	retryWait time.Duration
	log       *slog.Logger
	sleep     func(context.Context, time.Duration) error
}

type Option func(*Retriever)

// WithRetries retries transport errors, 429 and 5xx responses up to n extra times.
func WithRetries(n int) Option {
	return func(r *Retriever) {
		if n >= 0 {
			r.retries = n
		}
	}
}

func WithRetryWait(d time.Duration) Option {
	return func(r *Retriever) { r.retryWait = d }
}

// WithAccept sets the Accept header sent with every request.
func WithAccept(v string) Option {
	return func(r *Retriever) { r.accept = v }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Retriever) {
		if l != nil {
			r.log = l
		}
	}
}

// New builds a Retriever. varName is the placeholder the key is substituted
// into, path-escaped.
func New(exec *httpclient.Executor, template, varName string, opts ...Option) *Retriever {
	r := &Retriever{
		exec:      exec,
		template:  template,
		varName:   varName,
		retryWait: time.Second,
		log:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
		sleep:     sleepCtx,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.Retriever = (*Retriever)(nil)

// Retrieve issues one GET for key. Non-2xx responses are returned with
// Found=false and a nil error; only transport failures are errors.
func (r *Retriever) Retrieve(ctx context.Context, key string) (domain.Retrieval, error) {
	target, err := domain.RenderTemplate(r.template, map[string]string{r.varName: key}, url.PathEscape)
	if err != nil {
		return domain.Retrieval{Key: key}, err
	}

	result := domain.Retrieval{Key: key, URL: target}

	for attempt := 0; ; attempt++ {
		req, err := httpclient.BuildRequest(ctx, httpclient.RequestSpec{URL: target, Accept: r.accept})
		if err != nil {
			return result, err
		}

		resp, err := r.exec.Do(ctx, req)
		result.LatencyMS = resp.Duration.Milliseconds()

		if err != nil {
			if ctx.Err() == nil && attempt < r.retries {
				r.log.Warn("http.retry", "url", target, "attempt", attempt+1, "error", err)
				if werr := r.sleep(ctx, r.retryWait); werr == nil {
					continue
				}
			}
			runErr := domain.NewRunError(err)
			r.log.Error("http.transport", "url", target, "kind", runErr.Kind, "error", err)
			return result, &domain.OpError{
				Op:   "httpretriever.retrieve",
				Kind: domain.KindTransport,
				Path: target,
				Err:  err,
			}
		}

		if retryableStatus(resp.Status) && attempt < r.retries {
			r.log.Warn("http.retry", "url", target, "attempt", attempt+1, "status", resp.Status)
			if werr := r.sleep(ctx, r.retryWait); werr != nil {
				return result, &domain.OpError{
					Op:   "httpretriever.retrieve",
					Kind: domain.KindTransport,
					Path: target,
					Err:  werr,
				}
			}
			continue
		}

		result.StatusCode = resp.Status
		result.Body = resp.BodyBytes
		result.Truncated = resp.Truncated
		result.Found = resp.Status == http.StatusOK
		r.log.Debug("http.get", "url", target, "status", resp.Status, "bytes", len(resp.BodyBytes), "latency_ms", result.LatencyMS)
		return result, nil
	}
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
