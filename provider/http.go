package provider

import (
	"net"
	"net/http"
	"time"

	"proompter/config"
)

// newHTTPClient returns the HTTP client shared by every SDK. The connect
// timeout bounds dialing, the read timeout bounds the wait for response
// headers, and the overall client timeout bounds the full exchange.
func newHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   config.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   config.ConnectTimeout,
		ResponseHeaderTimeout: config.ReadTimeout,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   config.ConnectTimeout + config.ReadTimeout,
	}
}
