package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veritell/matchbook/core"
	"github.com/veritell/matchbook/oracle"
	"github.com/veritell/matchbook/oracle/mock"
)

func TestMatchPair_ConfidentAcceptSkipsOracle(t *testing.T) {
	mockOracle := mock.NewMockOracle()
	pm, err := NewPairMatcher(WithOracle(mockOracle))
	require.NoError(t, err)

	verdict, err := pm.MatchPair(context.Background(), "Amazon", "Amazon.com Inc")
	require.NoError(t, err)

	assert.True(t, verdict.IsMatch)
	assert.GreaterOrEqual(t, verdict.Confidence, 0.90)
	assert.Zero(t, mockOracle.CallCount())
}

func TestMatchPair_ConfidentRejectSkipsOracle(t *testing.T) {
	mockOracle := mock.NewMockOracle()
	pm, err := NewPairMatcher(WithOracle(mockOracle))
	require.NoError(t, err)

	verdict, err := pm.MatchPair(context.Background(), "Quorvex", "Zentara Dynamics")
	require.NoError(t, err)

	assert.False(t, verdict.IsMatch)
	assert.Less(t, verdict.Confidence, 0.40)
	assert.Zero(t, mockOracle.CallCount())
}

func TestMatchPair_IdenticalNames(t *testing.T) {
	pm, err := NewPairMatcher()
	require.NoError(t, err)

	verdict, err := pm.MatchPair(context.Background(), "Johnson", "Johnson")
	require.NoError(t, err)

	assert.True(t, verdict.IsMatch)
	assert.InDelta(t, 1.0, verdict.Confidence, 1e-9)
}

func TestMatchPair_SurnameOnlyRejectedWithoutOracle(t *testing.T) {
	mockOracle := mock.NewMockOracle()
	mockOracle.JudgeFunc = func(ctx context.Context, nameA, nameB string, scores core.KernelScoreSet) (*oracle.Verdict, error) {
		t.Fatal("surname-only pair must not reach the oracle")
		return nil, nil
	}

	pm, err := NewPairMatcher(WithOracle(mockOracle))
	require.NoError(t, err)

	verdict, err := pm.MatchPair(context.Background(), "Johnson", "Johnson Controls")
	require.NoError(t, err)

	assert.False(t, verdict.IsMatch)
	assert.Contains(t, verdict.Reasoning, "surname")
}

func TestMatchPair_UncertainBandEscalates(t *testing.T) {
	mockOracle := mock.NewMockOracle()
	mockOracle.JudgeFunc = func(ctx context.Context, nameA, nameB string, scores core.KernelScoreSet) (*oracle.Verdict, error) {
		assert.Equal(t, "Amazone", nameA)
		assert.Equal(t, "Amazon", nameB)
		assert.Greater(t, scores.EditDistance, 0.0)
		return &oracle.Verdict{
			IsMatch:    true,
			Confidence: 0.93,
			Reasoning:  "single-character typo",
		}, nil
	}

	pm, err := NewPairMatcher(WithOracle(mockOracle))
	require.NoError(t, err)

	verdict, err := pm.MatchPair(context.Background(), "Amazone", "Amazon")
	require.NoError(t, err)

	assert.True(t, verdict.IsMatch)
	assert.InDelta(t, 0.93, verdict.Confidence, 1e-9)
	assert.Equal(t, core.MatchTypeSemantic, verdict.MatchType)
	assert.Equal(t, 1, mockOracle.CallCount())
}

func TestMatchPair_UncertainBandWithoutOracleRejects(t *testing.T) {
	pm, err := NewPairMatcher()
	require.NoError(t, err)

	verdict, err := pm.MatchPair(context.Background(), "Amazone", "Amazon")
	require.NoError(t, err)

	assert.False(t, verdict.IsMatch)
	// The lexical confidence is preserved so callers can apply their own
	// thresholds
	assert.GreaterOrEqual(t, verdict.Confidence, 0.40)
	assert.Less(t, verdict.Confidence, 0.90)
}

func TestMatchPair_OracleFailureFailsClosed(t *testing.T) {
	mockOracle := mock.NewMockOracle()
	mockOracle.JudgeFunc = func(ctx context.Context, nameA, nameB string, scores core.KernelScoreSet) (*oracle.Verdict, error) {
		return nil, errors.New("connection refused")
	}

	pm, err := NewPairMatcher(WithOracle(mockOracle))
	require.NoError(t, err)

	verdict, err := pm.MatchPair(context.Background(), "Amazone", "Amazon")
	require.NoError(t, err)

	assert.False(t, verdict.IsMatch)
	assert.Zero(t, verdict.Confidence)
	assert.Equal(t, 1, mockOracle.CallCount())
}
