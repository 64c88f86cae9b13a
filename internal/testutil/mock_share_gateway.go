package testutil

import (
	"context"
	"sync"

	"github.com/oficinago/oficinago/internal/delivery"
)

// SharedCall records one invocation of Share
type SharedCall struct {
	Phone string
	Files []delivery.ShareFile
	Title string
	Text  string
}

// MockShareGateway implements delivery.ShareGateway with scriptable behavior
type MockShareGateway struct {
	mu sync.Mutex

	// Supported gates CanShareFiles wholesale
	Supported bool
	// MaxFiles caps how many files report as shareable; 0 means no cap
	MaxFiles int
	// ShareErr is returned by Share when set
	ShareErr error

	started chan<- struct{}
	release <-chan struct{}
	calls   []SharedCall
}

// NewMockShareGateway returns a gateway that accepts any share
func NewMockShareGateway() *MockShareGateway {
	return &MockShareGateway{Supported: true}
}

func (m *MockShareGateway) CanShareFiles(ctx context.Context, files []delivery.ShareFile) bool {
	if !m.Supported || len(files) == 0 {
		return false
	}
	if m.MaxFiles > 0 && len(files) > m.MaxFiles {
		return false
	}
	return true
}

// BlockShare makes the next Share signal started and then wait on release,
// so tests can observe the busy state mid-flight
func (m *MockShareGateway) BlockShare(started chan<- struct{}, release <-chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = started
	m.release = release
}

func (m *MockShareGateway) Share(ctx context.Context, phone string, files []delivery.ShareFile, title, text string) error {
	m.mu.Lock()
	m.calls = append(m.calls, SharedCall{Phone: phone, Files: files, Title: title, Text: text})
	started, release := m.started, m.release
	m.started, m.release = nil, nil
	m.mu.Unlock()

	if started != nil {
		close(started)
		<-release
	}
	return m.ShareErr
}

// Calls returns every share invocation seen so far
func (m *MockShareGateway) Calls() []SharedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SharedCall(nil), m.calls...)
}
