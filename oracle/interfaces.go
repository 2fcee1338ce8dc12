package oracle

import (
	"context"

	"github.com/veritell/matchbook/core"
)

// Verdict is the oracle's judgment on whether two names refer to the same
// real-world entity.
type Verdict struct {
	// IsMatch is true when the oracle believes both names denote the same
	// entity.
	IsMatch bool

	// Confidence is the oracle's own calibrated confidence in [0,1].
	Confidence float64

	// Reasoning is a short free-text explanation of the judgment.
	Reasoning string
}

// Oracle resolves name pairs that lexical scoring alone cannot decide.
// Implementations must be thread-safe for concurrent use.
type Oracle interface {
	// Judge decides whether nameA and nameB refer to the same entity.
	// The kernel scores computed for the pair are passed along as evidence
	// the oracle may weigh. Returns an error if the judgment cannot be
	// obtained; callers treat errors as "no verdict", never as a match.
	Judge(ctx context.Context, nameA, nameB string, scores core.KernelScoreSet) (*Verdict, error)

	// Close releases resources held by the oracle.
	Close() error
}
