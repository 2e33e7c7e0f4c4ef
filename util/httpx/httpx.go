package httpx

import (
	"net"
	"net/http"
	"time"
)

var defaultClient = New(10 * time.Second)

// New builds an *http.Client with a shared tuned transport. Upstream catalog
// clients use it instead of http.DefaultClient so connection reuse and timeouts
// are consistent.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func Client() *http.Client { return defaultClient }
