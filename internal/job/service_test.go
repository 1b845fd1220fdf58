package job

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- failing store mock ---

// failStore errors on every operation, for exercising the per-operation
// failure policies.
type failStore struct{ err error }

func (f *failStore) Create(context.Context, *Job) error { return f.err }
func (f *failStore) Update(context.Context, *Job) error { return f.err }
func (f *failStore) Delete(context.Context, uint64, string) error {
	return f.err
}
func (f *failStore) FindByID(context.Context, uint64, string) (*Job, error) {
	return nil, f.err
}
func (f *failStore) FindPage(context.Context, Filter, int, int) ([]Job, error) {
	return nil, f.err
}
func (f *failStore) Count(context.Context, Filter) (int64, error) {
	return 0, f.err
}
func (f *failStore) FindAll(context.Context, uint64) ([]Job, error) {
	return nil, f.err
}
func (f *failStore) CountByStatus(context.Context, uint64) (map[string]int64, error) {
	return nil, f.err
}
func (f *failStore) CountByMonth(context.Context, uint64, time.Time, time.Time) ([]MonthCount, error) {
	return nil, f.err
}
func (f *failStore) NormalizeStatuses(context.Context, uint64) (int64, error) {
	return 0, f.err
}

// --- helpers ---

func newTestService() (*Service, *MemoryStore, *time.Time) {
	store := NewMemoryStore()
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc := &Service{Store: store, Now: func() time.Time { return now }}
	return svc, store, &now
}

func mustCreate(t *testing.T, svc *Service, owner uint64, in Fields) *Job {
	t.Helper()
	j, err := svc.Create(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return j
}

func fields(position, company string) Fields {
	return Fields{
		Position: position,
		Company:  company,
		Location: "Berlin",
		Status:   StatusPending,
		Mode:     ModeFullTime,
	}
}

// --- record writer ---

func TestCreateSetsOwnerIDAndTimestamps(t *testing.T) {
	svc, _, now := newTestService()

	j := mustCreate(t, svc, 7, fields("backend engineer", "acme"))

	if j.ID == "" {
		t.Fatal("expected generated id")
	}
	if j.UserID != 7 {
		t.Fatalf("owner = %d, want 7", j.UserID)
	}
	if !j.CreatedAt.Equal(*now) || !j.UpdatedAt.Equal(*now) {
		t.Fatalf("timestamps = %v / %v, want both %v", j.CreatedAt, j.UpdatedAt, *now)
	}
}

func TestCreateDefaultsStatusAndMode(t *testing.T) {
	svc, _, _ := newTestService()

	j := mustCreate(t, svc, 1, Fields{Position: "dev", Company: "acme", Location: "remote"})

	if j.Status != StatusPending {
		t.Fatalf("status = %q, want %q", j.Status, StatusPending)
	}
	if j.Mode != ModeFullTime {
		t.Fatalf("mode = %q, want %q", j.Mode, ModeFullTime)
	}
}

func TestCreateKeepsCallerCasing(t *testing.T) {
	svc, _, _ := newTestService()

	in := fields("dev", "acme")
	in.Status = "Interview"
	j := mustCreate(t, svc, 1, in)

	if j.Status != "Interview" {
		t.Fatalf("status = %q, want stored verbatim", j.Status)
	}
}

func TestCreateUnauthenticated(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.Create(context.Background(), 0, fields("dev", "acme"))
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
	if n, _ := store.Count(context.Background(), Filter{OwnerID: 0}); n != 0 {
		t.Fatal("storage touched by unauthenticated create")
	}
}

func TestUpdateRefreshesUpdatedAtOnly(t *testing.T) {
	svc, _, now := newTestService()
	created := *now
	j := mustCreate(t, svc, 1, fields("dev", "acme"))

	*now = now.Add(2 * time.Hour)
	in := fields("senior dev", "acme")
	in.Status = StatusInterview
	upd, err := svc.Update(context.Background(), 1, j.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if upd.Position != "senior dev" || upd.Status != StatusInterview {
		t.Fatalf("fields not applied: %+v", upd)
	}
	if !upd.CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed: %v", upd.CreatedAt)
	}
	if !upd.UpdatedAt.Equal(*now) {
		t.Fatalf("updatedAt = %v, want %v", upd.UpdatedAt, *now)
	}
	if upd.UserID != 1 {
		t.Fatalf("owner changed: %d", upd.UserID)
	}
}

func TestMutationOwnershipEnforced(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	j := mustCreate(t, svc, 1, fields("dev", "acme"))

	if _, err := svc.Update(ctx, 2, j.ID, fields("hacked", "evil")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Delete(ctx, 2, j.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete err = %v, want ErrNotFound", err)
	}

	got, err := svc.Get(ctx, 1, j.ID)
	if err != nil {
		t.Fatalf("record gone after foreign mutation attempts: %v", err)
	}
	if got.Position != "dev" || got.Company != "acme" {
		t.Fatalf("record modified: %+v", got)
	}
}

func TestDeleteReturnsPriorState(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	j := mustCreate(t, svc, 1, fields("dev", "acme"))

	del, err := svc.Delete(ctx, 1, j.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if del.ID != j.ID || del.Position != "dev" {
		t.Fatalf("prior state not returned: %+v", del)
	}
	if _, err := svc.Get(ctx, 1, j.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("record still present after delete")
	}
}

// --- single record fetch ---

func TestGetOwnershipIsolation(t *testing.T) {
	svc, _, _ := newTestService()
	j := mustCreate(t, svc, 1, fields("dev", "acme"))

	if _, err := svc.Get(context.Background(), 2, j.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for foreign owner", err)
	}
}

func TestGetStorageFailureLooksLikeNotFound(t *testing.T) {
	svc := &Service{Store: &failStore{err: errors.New("connection refused")}}

	_, err := svc.Get(context.Background(), 1, "some-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

// --- listing ---

func TestListPagination(t *testing.T) {
	svc, _, now := newTestService()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		*now = now.Add(time.Minute)
		mustCreate(t, svc, 1, fields("dev", "acme"))
	}

	for _, tc := range []struct {
		page, want int
	}{
		{1, 10}, {2, 10}, {3, 5}, {4, 0},
	} {
		res := svc.List(ctx, 1, ListParams{Page: tc.page, PageSize: 10})
		if len(res.Jobs) != tc.want {
			t.Fatalf("page %d: got %d jobs, want %d", tc.page, len(res.Jobs), tc.want)
		}
		if res.TotalCount != 25 || res.TotalPages != 3 {
			t.Fatalf("page %d: total=%d pages=%d, want 25/3", tc.page, res.TotalCount, res.TotalPages)
		}
		if res.Page != tc.page {
			t.Fatalf("page echoed as %d, want %d", res.Page, tc.page)
		}
	}
}

func TestListClampsBadPageParams(t *testing.T) {
	svc, _, _ := newTestService()
	mustCreate(t, svc, 1, fields("dev", "acme"))

	res := svc.List(context.Background(), 1, ListParams{Page: -3, PageSize: 0})
	if res.Page != 1 {
		t.Fatalf("page = %d, want clamped to 1", res.Page)
	}
	if len(res.Jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(res.Jobs))
	}
}

func TestListNewestFirst(t *testing.T) {
	svc, _, now := newTestService()

	older := mustCreate(t, svc, 1, fields("first", "acme"))
	*now = now.Add(time.Hour)
	newer := mustCreate(t, svc, 1, fields("second", "acme"))

	res := svc.List(context.Background(), 1, ListParams{})
	if len(res.Jobs) != 2 {
		t.Fatalf("got %d jobs", len(res.Jobs))
	}
	if res.Jobs[0].ID != newer.ID || res.Jobs[1].ID != older.ID {
		t.Fatal("not ordered newest first")
	}
}

func TestListSearchIsOrOverPositionAndCompany(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	byPosition := mustCreate(t, svc, 1, fields("Backend Engineer", "acme"))
	byCompany := mustCreate(t, svc, 1, fields("designer", "Backbone Labs"))
	mustCreate(t, svc, 1, fields("analyst", "acme"))

	res := svc.List(ctx, 1, ListParams{Search: "back"})
	if res.TotalCount != 2 {
		t.Fatalf("total = %d, want 2", res.TotalCount)
	}
	found := map[string]bool{}
	for _, j := range res.Jobs {
		found[j.ID] = true
	}
	if !found[byPosition.ID] || !found[byCompany.ID] {
		t.Fatal("search missed a position or company match")
	}

	// term matching neither field excludes regardless of status filter
	res = svc.List(ctx, 1, ListParams{Search: "xyzzy", Status: StatusPending})
	if res.TotalCount != 0 {
		t.Fatalf("total = %d, want 0", res.TotalCount)
	}
}

func TestListStatusFilter(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	in := fields("dev", "acme")
	in.Status = StatusInterview
	mustCreate(t, svc, 1, in)
	mustCreate(t, svc, 1, fields("dev2", "acme"))

	res := svc.List(ctx, 1, ListParams{Status: StatusInterview})
	if res.TotalCount != 1 || res.Jobs[0].Status != StatusInterview {
		t.Fatalf("interview filter: %+v", res)
	}

	if res := svc.List(ctx, 1, ListParams{Status: StatusFilterAll}); res.TotalCount != 2 {
		t.Fatalf("sentinel 'all': total = %d, want 2", res.TotalCount)
	}
}

// The live filter is an exact match on the stored value; a differently-cased
// status is invisible to it even though the aggregator would count it.
func TestListStatusFilterIsExactMatch(t *testing.T) {
	svc, _, _ := newTestService()

	in := fields("dev", "acme")
	in.Status = "Pending"
	mustCreate(t, svc, 1, in)

	res := svc.List(context.Background(), 1, ListParams{Status: StatusPending})
	if res.TotalCount != 0 {
		t.Fatalf("total = %d, want 0 (filter must not normalize)", res.TotalCount)
	}
}

func TestListFailSoft(t *testing.T) {
	svc := &Service{Store: &failStore{err: errors.New("connection refused")}}

	res := svc.List(context.Background(), 1, ListParams{Page: 3, PageSize: 10})
	if len(res.Jobs) != 0 || res.TotalCount != 0 || res.Page != 1 || res.TotalPages != 0 {
		t.Fatalf("fail-soft result = %+v, want empty page 1", res)
	}
	if res.Jobs == nil {
		t.Fatal("jobs must be an empty slice, not nil")
	}
}

func TestListEmptyResult(t *testing.T) {
	svc, _, _ := newTestService()

	res := svc.List(context.Background(), 1, ListParams{Page: 2, PageSize: 10})
	if len(res.Jobs) != 0 || res.TotalCount != 0 || res.TotalPages != 0 || res.Page != 2 {
		t.Fatalf("empty result = %+v", res)
	}
}

// --- export ---

func TestExportAllIgnoresPagination(t *testing.T) {
	svc, _, now := newTestService()

	for i := 0; i < 30; i++ {
		*now = now.Add(time.Minute)
		mustCreate(t, svc, 1, fields("dev", "acme"))
	}
	mustCreate(t, svc, 2, fields("other", "corp"))

	jobs, err := svc.ExportAll(context.Background(), 1)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(jobs) != 30 {
		t.Fatalf("got %d jobs, want all 30", len(jobs))
	}
	for i := 1; i < len(jobs); i++ {
		if jobs[i].CreatedAt.After(jobs[i-1].CreatedAt) {
			t.Fatal("export not newest first")
		}
	}
}

// --- end to end ---

func TestScenarioCountsAndFilter(t *testing.T) {
	svc, _, now := newTestService()
	ctx := context.Background()

	p1 := mustCreate(t, svc, 1, fields("dev one", "acme"))
	*now = now.Add(time.Minute)
	p2 := mustCreate(t, svc, 1, fields("dev two", "acme"))
	*now = now.Add(time.Minute)
	in := fields("dev three", "acme")
	in.Status = StatusInterview
	mustCreate(t, svc, 1, in)

	counts, err := svc.StatusCounts(ctx, 1)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Pending != 2 || counts.Interview != 1 || counts.Declined != 0 {
		t.Fatalf("counts = %+v", counts)
	}

	res := svc.List(ctx, 1, ListParams{Status: StatusPending})
	if res.TotalCount != 2 {
		t.Fatalf("pending total = %d, want 2", res.TotalCount)
	}
	if res.Jobs[0].ID != p2.ID || res.Jobs[1].ID != p1.ID {
		t.Fatal("pending records not newest first")
	}
}
