package db

import (
	"fmt"

	"jobtrail/internal/auth"
	"jobtrail/internal/job"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&job.Job{},
		&auth.User{},
	); err != nil {
		return err
	}

	// Listing is always owner-scoped and newest-first; stats group by status.
	stmts := []string{
		`create index if not exists idx_jobs_user_created on jobs(user_id, created_at desc, id desc);`,
		`create index if not exists idx_jobs_user_status on jobs(user_id, status);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
