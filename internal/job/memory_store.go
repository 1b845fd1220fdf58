package job

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps jobs in-process with the same query semantics as
// GormStore. Tests run against it; it is also enough for local tinkering
// without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]Job)}
}

func (m *MemoryStore) Create(_ context.Context, j *Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	m.jobs[j.ID] = *j
	return nil
}

func (m *MemoryStore) FindByID(_ context.Context, ownerID uint64, id string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok || j.UserID != ownerID {
		return nil, ErrNotFound
	}
	out := j
	return &out, nil
}

func (m *MemoryStore) Update(_ context.Context, j *Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.jobs[j.ID]
	if !ok || cur.UserID != j.UserID {
		return ErrNotFound
	}
	cur.Position = j.Position
	cur.Company = j.Company
	cur.Location = j.Location
	cur.Status = j.Status
	cur.Mode = j.Mode
	cur.UpdatedAt = j.UpdatedAt
	m.jobs[j.ID] = cur
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, ownerID uint64, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok || j.UserID != ownerID {
		return ErrNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *MemoryStore) matches(j Job, f Filter) bool {
	if j.UserID != f.OwnerID {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(j.Position), term) &&
			!strings.Contains(strings.ToLower(j.Company), term) {
			return false
		}
	}
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	return true
}

// newestFirst matches the SQL order: created_at desc, id desc.
func newestFirst(rows []Job) {
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].CreatedAt.Equal(rows[b].CreatedAt) {
			return rows[a].ID > rows[b].ID
		}
		return rows[a].CreatedAt.After(rows[b].CreatedAt)
	})
}

func (m *MemoryStore) FindPage(_ context.Context, f Filter, offset, limit int) ([]Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rows []Job
	for _, j := range m.jobs {
		if m.matches(j, f) {
			rows = append(rows, j)
		}
	}
	newestFirst(rows)
	if offset >= len(rows) {
		return nil, nil
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (m *MemoryStore) Count(_ context.Context, f Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, j := range m.jobs {
		if m.matches(j, f) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) FindAll(_ context.Context, ownerID uint64) ([]Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rows []Job
	for _, j := range m.jobs {
		if j.UserID == ownerID {
			rows = append(rows, j)
		}
	}
	newestFirst(rows)
	return rows, nil
}

func (m *MemoryStore) CountByStatus(_ context.Context, ownerID uint64) (map[string]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := map[string]int64{}
	for _, j := range m.jobs {
		if j.UserID == ownerID {
			out[j.Status]++
		}
	}
	return out, nil
}

func (m *MemoryStore) CountByMonth(_ context.Context, ownerID uint64, from, to time.Time) ([]MonthCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buckets := map[[2]int]int{}
	for _, j := range m.jobs {
		if j.UserID != ownerID {
			continue
		}
		if j.CreatedAt.Before(from) || j.CreatedAt.After(to) {
			continue
		}
		buckets[[2]int{j.CreatedAt.Year(), int(j.CreatedAt.Month())}]++
	}
	out := make([]MonthCount, 0, len(buckets))
	for k, n := range buckets {
		out = append(out, MonthCount{Year: k[0], Month: k[1], Count: n})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Year == out[b].Year {
			return out[a].Month < out[b].Month
		}
		return out[a].Year < out[b].Year
	})
	return out, nil
}

func (m *MemoryStore) NormalizeStatuses(_ context.Context, ownerID uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	now := time.Now()
	for id, j := range m.jobs {
		if j.UserID != ownerID {
			continue
		}
		canon := strings.ToLower(strings.TrimSpace(j.Status))
		if !KnownStatus(canon) || canon == j.Status {
			continue
		}
		j.Status = canon
		j.UpdatedAt = now
		m.jobs[id] = j
		n++
	}
	return n, nil
}
