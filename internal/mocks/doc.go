// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations can be reused: each mock exposes function
// fields for per-test behavior overrides plus default-value fields for the
// common case.
package mocks
