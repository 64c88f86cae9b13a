package testutil

import (
	"context"
	"sync"

	"github.com/oficinago/oficinago/internal/domain/receipt"
)

// MockCapturer implements raster.Capturer with a canned artifact
type MockCapturer struct {
	mu       sync.Mutex
	Artifact *receipt.RenderArtifact
	Err      error
	calls    int
	started  chan<- struct{}
	release  <-chan struct{}
}

// NewMockCapturer returns a capturer that yields a small valid artifact
func NewMockCapturer() *MockCapturer {
	return &MockCapturer{
		Artifact: &receipt.RenderArtifact{
			Displayable: "data:image/png;base64,aW1n",
			Binary:      []byte("img"),
			Width:       400,
			Height:      800,
		},
	}
}

// BlockCapture makes the next Capture signal started and then wait on
// release, so tests can observe in-flight state
func (m *MockCapturer) BlockCapture(started chan<- struct{}, release <-chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = started
	m.release = release
}

func (m *MockCapturer) Capture(ctx context.Context, html string) (*receipt.RenderArtifact, error) {
	m.mu.Lock()
	m.calls++
	started, release := m.started, m.release
	m.started, m.release = nil, nil
	m.mu.Unlock()

	if started != nil {
		close(started)
		<-release
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Artifact, nil
}

// Calls returns how many captures were attempted
func (m *MockCapturer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
