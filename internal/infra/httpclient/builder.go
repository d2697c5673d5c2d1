package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/guimsilvaa/topufa/internal/domain"
)

// RequestSpec describes a read-only request against a public REST API.
type RequestSpec struct {
	URL     string
	Accept  string
	Headers map[string]string
}

// BuildRequest builds a GET request. Only absolute http(s) URLs are accepted.
func BuildRequest(ctx context.Context, spec RequestSpec) (*http.Request, error) {
	raw := strings.TrimSpace(spec.URL)
	if raw == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidConfig,
		}
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		if err == nil {
			err = domain.ErrInvalidConfig
		}
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: raw,
			Err:  err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: raw,
			Err:  err,
		}
	}

	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}
	if spec.Accept != "" && req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", spec.Accept)
	}

	return req, nil
}
