package job

import (
	"context"
	"time"
)

// Filter selects a subset of one owner's jobs. OwnerID is always applied
// first; Search and Status are optional refinements.
type Filter struct {
	OwnerID uint64
	Search  string // case-insensitive substring over position OR company
	Status  string // exact match on the stored value; empty disables
}

// MonthCount is one calendar-month bucket from CountByMonth.
type MonthCount struct {
	Year  int
	Month int
	Count int
}

// Store is the persistence collaborator for jobs. Compound-key operations
// (FindByID, Update, Delete) must match id and owner jointly and return
// ErrNotFound on a miss.
type Store interface {
	Create(ctx context.Context, j *Job) error
	FindByID(ctx context.Context, ownerID uint64, id string) (*Job, error)
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, ownerID uint64, id string) error

	FindPage(ctx context.Context, f Filter, offset, limit int) ([]Job, error)
	Count(ctx context.Context, f Filter) (int64, error)
	FindAll(ctx context.Context, ownerID uint64) ([]Job, error)

	// CountByStatus groups by the stored status value verbatim; case
	// normalization is the aggregator's job.
	CountByStatus(ctx context.Context, ownerID uint64) (map[string]int64, error)
	// CountByMonth buckets jobs with from <= created_at <= to by calendar
	// month, ordered ascending.
	CountByMonth(ctx context.Context, ownerID uint64, from, to time.Time) ([]MonthCount, error)

	// NormalizeStatuses rewrites stored statuses whose trimmed, lower-cased
	// form is a known category to that canonical form. Returns rows changed.
	NormalizeStatuses(ctx context.Context, ownerID uint64) (int64, error)
}
