package tx

import "context"

// MockManager is a no-op Manager for tests. It runs fn directly without a
// database transaction.
type MockManager struct{}

// NewMockManager creates a MockManager.
func NewMockManager() *MockManager {
	return &MockManager{}
}

// RunInTransaction implements Manager.
func (m *MockManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ReadOnly implements ReadOnlyManager.
func (m *MockManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
