package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/oficinago/oficinago/internal/httpclient"
)

// MockHTTPClient implements a mock HTTP client for testing
type MockHTTPClient struct {
	mu       sync.RWMutex
	routes   map[string]MockResponse
	requests []*httpclient.Request
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
	Err        error
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]MockResponse),
	}
}

// RegisterResponse registers a mock response for any URL containing the
// given fragment
func (m *MockHTTPClient) RegisterResponse(urlFragment string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[urlFragment] = resp
}

// Requests returns every request seen so far
func (m *MockHTTPClient) Requests() []*httpclient.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*httpclient.Request(nil), m.requests...)
}

// Send records the request and replays the registered response
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	for fragment, resp := range m.routes {
		if strings.Contains(req.URL, fragment) {
			if resp.Err != nil {
				return nil, resp.Err
			}
			status := resp.StatusCode
			if status == 0 {
				status = http.StatusOK
			}
			return &httpclient.Response{
				StatusCode: status,
				Body:       resp.Body,
				Headers:    resp.Headers,
			}, nil
		}
	}
	return &httpclient.Response{StatusCode: http.StatusNotFound}, nil
}
