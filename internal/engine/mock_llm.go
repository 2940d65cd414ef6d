package engine

import (
	"context"
	"sync"

	"github.com/arigatoexpress/DesktopOrganizer/internal/llm"
)

// mockClient is a configurable llm.Client for tests.
type mockClient struct {
	probeErr      error
	classifyErr   error
	response      llm.ClassificationResponse
	mu            sync.Mutex
	probeCalls    int
	classifyCalls int
}

func (m *mockClient) Probe(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probeCalls++
	return m.probeErr
}

func (m *mockClient) Classify(_ context.Context, _ string) (llm.ClassificationResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classifyCalls++
	if m.classifyErr != nil {
		return llm.ClassificationResponse{}, m.classifyErr
	}
	return m.response, nil
}
