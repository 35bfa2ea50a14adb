package tool

import (
	"crypto/tls"
	"io"
	"net/http"
	"time"
)

var (
	DefaultTimeout       = 30 * time.Second
	ConnectionHttpClient *http.Client
	ProbeHttpClient      *http.Client
)

func init() {
	ConnectionHttpClient = NewHTTPClient(DefaultTimeout)
	ProbeHttpClient = NewHTTPClient(3 * time.Second)
}

// NewHTTPClient creates an HTTP client, skipping self-signed certificate verification
// since the peer app serves a self-signed certificate on localhost.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func GetHttpClient() *http.Client {
	return ConnectionHttpClient
}

func GetProbeHttpClient() *http.Client {
	return ProbeHttpClient
}

// NewJSONRequest sets the JSON content headers on a freshly built request.
func NewJSONRequest(req *http.Request, err error) (*http.Request, error) {
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// CloseBody closes a response body and logs failures.
func CloseBody(body io.Closer) {
	if err := body.Close(); err != nil {
		DefaultLogger.Errorf("Failed to close response body: %v", err)
	}
}
