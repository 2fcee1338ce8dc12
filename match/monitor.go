package match

import (
	"github.com/veritell/matchbook/core"
)

// MatchMonitor provides hooks to observe the match process.
// Implement this interface to track intermediate steps and results during a
// match operation.
type MatchMonitor interface {
	Start(query string)
	CacheHit(query string, outcome *core.MatchOutcome)
	AfterRetrieval(strategy string, candidates []*core.CatalogEntity)
	CandidateSkipped(entity *core.CatalogEntity, reason string)
	AfterScore(candidate *core.MatchCandidate)
	EarlyExit(candidate *core.MatchCandidate)
	Finish(outcome *core.MatchOutcome)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                  {}
func (n *noopMonitor) CacheHit(_ string, _ *core.MatchOutcome)         {}
func (n *noopMonitor) AfterRetrieval(_ string, _ []*core.CatalogEntity) {}
func (n *noopMonitor) CandidateSkipped(_ *core.CatalogEntity, _ string) {}
func (n *noopMonitor) AfterScore(_ *core.MatchCandidate)               {}
func (n *noopMonitor) EarlyExit(_ *core.MatchCandidate)                {}
func (n *noopMonitor) Finish(_ *core.MatchOutcome)                     {}
