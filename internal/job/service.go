package job

import (
	"context"
	"log"
	"strings"
	"time"
)

// Service implements the tracked-application operations over a Store.
// Every method takes the caller's resolved owner id explicitly; nothing here
// reads identity from ambient state.
type Service struct {
	Store Store

	// Now is the clock for timestamps and the trend window. Nil means
	// time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type ListParams struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

type ListResult struct {
	Jobs       []Job
	TotalCount int64
	Page       int
	TotalPages int
}

// List returns one page of the owner's jobs, newest first. Storage failures
// are swallowed: the listing path never errors, it answers an empty page
// instead. The underlying error is logged and nothing else.
func (s *Service) List(ctx context.Context, ownerID uint64, p ListParams) ListResult {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}

	f := Filter{OwnerID: ownerID, Search: strings.TrimSpace(p.Search)}
	if st := strings.TrimSpace(p.Status); st != "" && st != StatusFilterAll {
		f.Status = st
	}

	empty := ListResult{Jobs: []Job{}, Page: 1}

	total, err := s.Store.Count(ctx, f)
	if err != nil {
		log.Printf("job list count failed: %v", err)
		return empty
	}

	rows, err := s.Store.FindPage(ctx, f, (p.Page-1)*p.PageSize, p.PageSize)
	if err != nil {
		log.Printf("job list fetch failed: %v", err)
		return empty
	}
	if rows == nil {
		rows = []Job{}
	}

	totalPages := int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	return ListResult{
		Jobs:       rows,
		TotalCount: total,
		Page:       p.Page,
		TotalPages: totalPages,
	}
}

// Get fetches one job by compound key. A storage failure is reported the same
// way as a miss so the caller redirects either way.
func (s *Service) Get(ctx context.Context, ownerID uint64, id string) (*Job, error) {
	j, err := s.Store.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return j, nil
}

// ExportAll returns every job the owner has, newest first, for the export
// consumers.
func (s *Service) ExportAll(ctx context.Context, ownerID uint64) ([]Job, error) {
	return s.Store.FindAll(ctx, ownerID)
}

// Create validates in, then persists a new job owned by ownerID. Empty
// status/mode take the schema defaults before validation. The stored status
// and mode keep the caller's casing.
func (s *Service) Create(ctx context.Context, ownerID uint64, in Fields) (*Job, error) {
	if ownerID == 0 {
		return nil, ErrUnauthenticated
	}
	if in.Status == "" {
		in.Status = StatusPending
	}
	if in.Mode == "" {
		in.Mode = ModeFullTime
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	j := &Job{
		UserID:    ownerID,
		Position:  in.Position,
		Company:   in.Company,
		Location:  in.Location,
		Status:    in.Status,
		Mode:      in.Mode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// Update replaces the caller-editable fields of (id, ownerID). Owner and
// CreatedAt are immutable; UpdatedAt is refreshed.
func (s *Service) Update(ctx context.Context, ownerID uint64, id string, in Fields) (*Job, error) {
	if ownerID == 0 {
		return nil, ErrUnauthenticated
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	j, err := s.Store.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	j.Position = in.Position
	j.Company = in.Company
	j.Location = in.Location
	j.Status = in.Status
	j.Mode = in.Mode
	j.UpdatedAt = s.now()

	if err := s.Store.Update(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// Delete removes (id, ownerID) and returns the record's prior state.
func (s *Service) Delete(ctx context.Context, ownerID uint64, id string) (*Job, error) {
	if ownerID == 0 {
		return nil, ErrUnauthenticated
	}
	j, err := s.Store.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Delete(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return j, nil
}

// StatusCounts groups the owner's jobs into the three fixed categories.
// Group keys are lower-cased before matching; anything else is dropped. A
// storage failure is fatal here, unlike List.
type StatusCounts struct {
	Pending   int64 `json:"pending"`
	Interview int64 `json:"interview"`
	Declined  int64 `json:"declined"`
}

func (s *Service) StatusCounts(ctx context.Context, ownerID uint64) (StatusCounts, error) {
	raw, err := s.Store.CountByStatus(ctx, ownerID)
	if err != nil {
		return StatusCounts{}, err
	}
	var c StatusCounts
	for status, n := range raw {
		switch strings.ToLower(status) {
		case StatusPending:
			c.Pending += n
		case StatusInterview:
			c.Interview += n
		case StatusDeclined:
			c.Declined += n
		}
	}
	return c, nil
}

// MonthBucket is one point of the monthly trend.
type MonthBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthlyTrend buckets the owner's jobs created in the trailing 6 months by
// calendar month, oldest first. Both window ends are inclusive; jobs dated in
// the future fall outside it. Months without jobs do not appear.
func (s *Service) MonthlyTrend(ctx context.Context, ownerID uint64) ([]MonthBucket, error) {
	now := s.now()
	from := now.AddDate(0, -6, 0)

	rows, err := s.Store.CountByMonth(ctx, ownerID, from, now)
	if err != nil {
		return nil, err
	}
	out := make([]MonthBucket, 0, len(rows))
	for _, r := range rows {
		label := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC).
			Format("Jan 06")
		out = append(out, MonthBucket{Label: label, Count: r.Count})
	}
	return out, nil
}

// RepairStatuses is the out-of-band fix for statuses persisted with stray
// casing or whitespace. The live filter path stays exact-match; this rewrites
// recognizable variants to their canonical form when invoked deliberately.
func (s *Service) RepairStatuses(ctx context.Context, ownerID uint64) (int64, error) {
	if ownerID == 0 {
		return 0, ErrUnauthenticated
	}
	return s.Store.NormalizeStatuses(ctx, ownerID)
}
