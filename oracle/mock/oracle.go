package mock

import (
	"context"
	"strings"

	"github.com/veritell/matchbook/core"
	"github.com/veritell/matchbook/oracle"
)

// MockOracle is a test double for oracle.Oracle.
// It allows custom behavior injection via function fields.
type MockOracle struct {
	// JudgeFunc is called by Judge if set.
	// If nil, uses a simple deterministic default judgment.
	JudgeFunc func(ctx context.Context, nameA, nameB string, scores core.KernelScoreSet) (*oracle.Verdict, error)

	callCount int
}

var _ oracle.Oracle = (*MockOracle)(nil)

// NewMockOracle creates a mock oracle with default behavior.
// Note: Returns concrete type to allow test assertions on call counts.
func NewMockOracle() *MockOracle {
	return &MockOracle{}
}

// Judge returns a canned verdict.
// Default behavior: names that are equal ignoring case match with high
// confidence, everything else is rejected.
func (m *MockOracle) Judge(ctx context.Context, nameA, nameB string, scores core.KernelScoreSet) (*oracle.Verdict, error) {
	m.callCount++

	if m.JudgeFunc != nil {
		return m.JudgeFunc(ctx, nameA, nameB, scores)
	}

	if strings.EqualFold(nameA, nameB) {
		return &oracle.Verdict{
			IsMatch:    true,
			Confidence: 0.99,
			Reasoning:  "names are identical",
		}, nil
	}
	return &oracle.Verdict{
		IsMatch:    false,
		Confidence: 0.8,
		Reasoning:  "names differ",
	}, nil
}

// Close releases resources. The mock holds none.
func (m *MockOracle) Close() error {
	return nil
}

// CallCount returns the number of times Judge was called.
func (m *MockOracle) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockOracle) Reset() {
	m.callCount = 0
	m.JudgeFunc = nil
}
