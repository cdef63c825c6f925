package journal

import (
	"context"
	"time"

	"quipu/internal/core/id"
)

// Filter selects entries for listing and report folds.
type Filter struct {
	// From/To bound the entry date; nil bounds are open
	From *time.Time
	To   *time.Time

	// Statuses limits to the given states; empty means all
	Statuses []Status

	Limit  int
	Offset int
}

// Repository defines persistence operations for journal entries.
type Repository interface {
	// Create inserts an entry with its lines.
	Create(ctx context.Context, entry *Entry) error

	// GetByID retrieves an entry with lines.
	GetByID(ctx context.Context, entryID id.ID) (*Entry, error)

	// GetByNumber retrieves an entry by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*Entry, error)

	// UpdateStatus writes the status transition with optimistic locking.
	// Returns CONFLICT if the stored version does not match.
	UpdateStatus(ctx context.Context, entry *Entry) error

	// List retrieves entries with lines, ordered by date then number.
	List(ctx context.Context, filter Filter) ([]*Entry, error)

	// Count returns the number of entries matching the filter.
	Count(ctx context.Context, filter Filter) (int64, error)
}
