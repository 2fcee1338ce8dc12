// Package mock provides a configurable in-memory oracle.Oracle for tests.
//
// The default judgment is deterministic so tests stay reproducible; custom
// behavior is injected through the JudgeFunc field.
package mock
