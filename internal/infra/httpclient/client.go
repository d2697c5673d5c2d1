package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/guimsilvaa/topufa/internal/domain"
)

type Config struct {
	// Total timeout for one request, including reading the body.
	// A context deadline can still override this.
	Timeout time.Duration

	// Transport / dial timeouts.
	DialTimeout     time.Duration
	KeepAlive       time.Duration
	TLSHandshake    time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConnsPerHost int

	// UserAgent is sent on every request when set.
	UserAgent string
}

func DefaultConfig() Config {
	return Config{
		Timeout:             30 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      20 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 4,
	}
}

// FromSettings overlays the workspace HTTP settings on DefaultConfig.
func FromSettings(s domain.HTTPConfig) Config {
	cfg := DefaultConfig()
	if s.Timeout > 0 {
		cfg.Timeout = s.Timeout
		if cfg.ResponseHeader > s.Timeout {
			cfg.ResponseHeader = s.Timeout
		}
	}
	cfg.UserAgent = s.UserAgent
	return cfg
}

func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	var rt http.RoundTripper = &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}
	if cfg.UserAgent != "" {
		rt = &userAgentTransport{next: rt, agent: cfg.UserAgent}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
	}
}

type userAgentTransport struct {
	next  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.agent)
	return t.next.RoundTrip(r)
}
