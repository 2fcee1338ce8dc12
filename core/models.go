package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog entities.
// It is generated using content-based hashing so that re-importing the same
// entity yields the same identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// CatalogEntity is a reference-catalog record a query name can resolve to.
// The matching core holds only transient read copies; the catalog store owns
// the records. Optional fields are explicit empty strings when a catalog
// source does not supply them.
type CatalogEntity struct {
	Id         ID
	Name       string // display name
	AltName    string // alternate or trade name, may be empty
	Category   string // classification metadata, may be empty
	City       string
	State      string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Tuple returns a string representation of the entity identity as
// "(Name,City,State)". This is used for generating deterministic IDs.
func (e *CatalogEntity) Tuple() string {
	return "(" + e.Name + "," + e.City + "," + e.State + ")"
}

// KernelScoreSet holds the output of all six similarity kernels for one
// (query, candidate) pair. Each score is in [0,1]. Score sets are ephemeral
// and recomputed for every pair; they are never reused across candidates.
type KernelScoreSet struct {
	Exact          float64
	EditDistance   float64
	PhoneticPrefix float64
	TokenSet       float64
	PhoneticCode   float64
	NGram          float64
}

// Match type tags describe which boost dominated the fused confidence.
const (
	MatchTypeExact     = "exact_cascading"
	MatchTypePrefix    = "prefix_cascading"
	MatchTypeBoundary  = "boundary_cascading"
	MatchTypeCascading = "cascading"
	MatchTypeSemantic  = "semantic"
)

// MatchCandidate is one scored candidate produced during a match operation.
// Candidates live for a single FindBestMatch invocation.
type MatchCandidate struct {
	Entity     *CatalogEntity
	Scores     KernelScoreSet
	Confidence float64
	MatchType  string
	Reasoning  string
}

// MatchOutcome is the result of one match operation. Matches are sorted by
// descending confidence and truncated to the caller's limit. BestMatch is nil
// unless at least one candidate reached the acceptance threshold; when set,
// Confidence carries its fused confidence.
type MatchOutcome struct {
	Matches    []*MatchCandidate
	BestMatch  *CatalogEntity
	Confidence float64
}

// PairVerdict is the result of a pairwise match decision, possibly reconciled
// with the semantic oracle's judgment.
type PairVerdict struct {
	IsMatch    bool
	Confidence float64
	MatchType  string
	Reasoning  string
	Scores     KernelScoreSet
}
