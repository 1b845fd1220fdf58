package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore implements Store on Postgres.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) Create(ctx context.Context, j *Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return s.DB.WithContext(ctx).Create(j).Error
}

func (s *GormStore) FindByID(ctx context.Context, ownerID uint64, id string) (*Job, error) {
	var j Job
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&j).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (s *GormStore) Update(ctx context.Context, j *Job) error {
	res := s.DB.WithContext(ctx).Model(&Job{}).
		Where("id = ? AND user_id = ?", j.ID, j.UserID).
		Updates(map[string]any{
			"position":   j.Position,
			"company":    j.Company,
			"location":   j.Location,
			"status":     j.Status,
			"mode":       j.Mode,
			"updated_at": j.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, ownerID uint64, id string) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&Job{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) filtered(ctx context.Context, f Filter) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&Job{}).Where("user_id = ?", f.OwnerID)
	if f.Search != "" {
		term := "%" + f.Search + "%"
		q = q.Where("position ILIKE ? OR company ILIKE ?", term, term)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (s *GormStore) FindPage(ctx context.Context, f Filter, offset, limit int) ([]Job, error) {
	var rows []Job
	err := s.filtered(ctx, f).
		Order("created_at desc, id desc").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64
	err := s.filtered(ctx, f).Count(&n).Error
	return n, err
}

func (s *GormStore) FindAll(ctx context.Context, ownerID uint64) ([]Job, error) {
	var rows []Job
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at desc, id desc").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) CountByStatus(ctx context.Context, ownerID uint64) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.DB.WithContext(ctx).Model(&Job{}).
		Select("status, count(*) as count").
		Where("user_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}

func (s *GormStore) CountByMonth(ctx context.Context, ownerID uint64, from, to time.Time) ([]MonthCount, error) {
	var rows []MonthCount
	err := s.DB.WithContext(ctx).Raw(`
select extract(year from created_at)::int as year,
       extract(month from created_at)::int as month,
       count(*)::int as count
from jobs
where user_id = ? and created_at >= ? and created_at <= ?
group by 1, 2
order by 1, 2
`, ownerID, from, to).Scan(&rows).Error
	return rows, err
}

func (s *GormStore) NormalizeStatuses(ctx context.Context, ownerID uint64) (int64, error) {
	res := s.DB.WithContext(ctx).Exec(`
update jobs
set status = lower(btrim(status)), updated_at = now()
where user_id = ?
  and lower(btrim(status)) in (?, ?, ?)
  and status <> lower(btrim(status))
`, ownerID, StatusPending, StatusInterview, StatusDeclined)
	return res.RowsAffected, res.Error
}
