package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/motivation"
)

// MockGenerator implements motivation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(
		ctx context.Context,
		userID uuid.UUID,
		stats domain.ActivityStats,
		opts domain.GenerationOptions,
	) (*domain.MotivationalMessage, error)

	// ClearCacheFn allows test cases to observe ClearCache calls
	ClearCacheFn func(userID uuid.UUID)

	// Default values used when functions aren't explicitly defined
	Message *domain.MotivationalMessage
	Err     error

	// ClearedUsers records every user passed to ClearCache
	ClearedUsers []uuid.UUID
}

// Ensure MockGenerator implements motivation.Generator
var _ motivation.Generator = (*MockGenerator)(nil)

// Generate implements the motivation.Generator interface
func (m *MockGenerator) Generate(
	ctx context.Context,
	userID uuid.UUID,
	stats domain.ActivityStats,
	opts domain.GenerationOptions,
) (*domain.MotivationalMessage, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, userID, stats, opts)
	}
	return m.Message, m.Err
}

// ClearCache implements the motivation.Generator interface
func (m *MockGenerator) ClearCache(userID uuid.UUID) {
	m.ClearedUsers = append(m.ClearedUsers, userID)
	if m.ClearCacheFn != nil {
		m.ClearCacheFn(userID)
	}
}
