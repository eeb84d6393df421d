package report

import (
	"context"
	"sync"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

// MockRenderer is a test double for the document rendering collaborator.
// It records every report it receives and returns canned output.
type MockRenderer struct {
	RenderErr error
	Output    []byte
	Reports   []*model.Report
	mu        sync.Mutex
}

// NewMockRenderer creates a mock renderer returning the given output.
func NewMockRenderer(output []byte) *MockRenderer {
	return &MockRenderer{Output: output}
}

// Render records the report and returns the configured output or error.
func (m *MockRenderer) Render(_ context.Context, report *model.Report) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Reports = append(m.Reports, report)
	if m.RenderErr != nil {
		return nil, m.RenderErr
	}
	return m.Output, nil
}

// LastReport returns the most recently rendered report, or nil.
func (m *MockRenderer) LastReport() *model.Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Reports) == 0 {
		return nil
	}
	return m.Reports[len(m.Reports)-1]
}
