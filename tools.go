//go:build tools

package tools

// mockery v3 is used as an installed binary, so nothing is imported here.
// Run mockery from the repository root to regenerate pkg/persistence/mocks
// (see .mockery.yaml).
