// Package oracle defines the interface to an external semantic judgment
// service used to disambiguate name pairs that lexical scoring leaves in
// the uncertain middle band.
//
// The Oracle interface deliberately stays narrow: given two names and the
// lexical evidence already computed for them, return a verdict with its own
// confidence. The openai subpackage implements it against any
// OpenAI-compatible chat completion API; the mock subpackage provides a
// configurable in-memory implementation for tests.
//
// Oracles are advisory. Callers must treat an error or an unreachable
// service as the absence of a verdict and fall back to their deterministic
// behavior, never as evidence for a match.
package oracle
