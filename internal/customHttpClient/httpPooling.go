package customHttpClient

import (
	"net/http"
	"time"

	"github.com/vantagecap/dealdesk/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// NewPooledClient returns an http.Client sharing the process-wide pooled
// transport. The OCR and search clients both talk to the same few hosts
// repeatedly, so connections are reused across requests.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
}
