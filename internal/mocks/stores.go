package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/store"
)

// MockUserStore implements store.UserStore in memory for testing.
type MockUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	// CreateErr, when set, is returned by Create regardless of input.
	CreateErr error
}

// NewMockUserStore creates an empty in-memory user store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[uuid.UUID]*domain.User)}
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the store.UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	m.users[user.ID] = user
	return nil
}

// GetByID implements the store.UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// GetByEmail implements the store.UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// MockActivityStore implements store.ActivityStore in memory for testing.
type MockActivityStore struct {
	mu         sync.Mutex
	activities []*domain.Activity

	// CreateErr, when set, is returned by Create regardless of input.
	CreateErr error

	// SummarizeFn allows test cases to mock the SummarizeMonth behavior.
	SummarizeFn func(ctx context.Context, userID uuid.UUID, year, month int) (*store.MonthlySummary, error)
}

// NewMockActivityStore creates an empty in-memory activity store.
func NewMockActivityStore() *MockActivityStore {
	return &MockActivityStore{}
}

// Ensure MockActivityStore implements store.ActivityStore
var _ store.ActivityStore = (*MockActivityStore)(nil)

// Create implements the store.ActivityStore interface
func (m *MockActivityStore) Create(ctx context.Context, activity *domain.Activity) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, activity)
	return nil
}

// ListByUser implements the store.ActivityStore interface. Activities are
// returned newest first, matching the SQL implementation.
func (m *MockActivityStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var owned []*domain.Activity
	for _, activity := range m.activities {
		if activity.UserID == userID {
			owned = append(owned, activity)
		}
	}

	// Newest first
	for i, j := 0, len(owned)-1; i < j; i, j = i+1, j-1 {
		owned[i], owned[j] = owned[j], owned[i]
	}

	if offset >= len(owned) {
		return nil, nil
	}
	owned = owned[offset:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

// SummarizeMonth implements the store.ActivityStore interface
func (m *MockActivityStore) SummarizeMonth(
	ctx context.Context,
	userID uuid.UUID,
	year, month int,
) (*store.MonthlySummary, error) {
	if m.SummarizeFn != nil {
		return m.SummarizeFn(ctx, userID, year, month)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	summary := &store.MonthlySummary{CountsByType: make(map[string]int)}
	for _, activity := range m.activities {
		if activity.UserID != userID {
			continue
		}
		if activity.StartedAt.Year() != year || int(activity.StartedAt.Month()) != month {
			continue
		}
		summary.CountsByType[activity.Type]++
		summary.TotalDistanceMeters += activity.DistanceMeters
		summary.TotalDurationSeconds += int64(activity.Duration.Seconds())
	}
	return summary, nil
}
