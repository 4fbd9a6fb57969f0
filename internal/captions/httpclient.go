package captions

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient builds the HTTP client shared by the network-backed caption
// sources. Connect and read timeouts are bounded independently so a slow
// upstream fails the tier instead of hanging the fetch.
func NewHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   connectTimeout + 2*readTimeout,
	}
}
