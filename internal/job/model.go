package job

import (
	"strings"
	"time"
)

const (
	StatusPending   = "pending"
	StatusInterview = "interview"
	StatusDeclined  = "declined"

	ModeFullTime   = "full-time"
	ModePartTime   = "part-time"
	ModeInternship = "internship"
)

// StatusFilterAll is the sentinel that disables status filtering on List.
const StatusFilterAll = "all"

const DefaultPageSize = 10

var validStatuses = map[string]struct{}{
	StatusPending:   {},
	StatusInterview: {},
	StatusDeclined:  {},
}

var validModes = map[string]struct{}{
	ModeFullTime:   {},
	ModePartTime:   {},
	ModeInternship: {},
}

// Job is one tracked application. Status and Mode are stored exactly as the
// caller sent them; the category check at the validation boundary is
// case-insensitive, so differently-cased values can coexist in storage and
// are reconciled at aggregation time only.
type Job struct {
	ID       string `gorm:"primaryKey"`
	UserID   uint64 `gorm:"index;not null"`
	Position string `gorm:"not null"`
	Company  string `gorm:"not null"`
	Location string `gorm:"not null"`
	Status   string `gorm:"index;not null;default:'pending'"`
	Mode     string `gorm:"not null;default:'full-time'"`

	CreatedAt time.Time `gorm:"index;not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

// Fields is the caller-supplied portion of a Job on create/update. Owner and
// timestamps are never taken from here.
type Fields struct {
	Position string
	Company  string
	Location string
	Status   string
	Mode     string
}

// Validate checks the non-empty text fields and the category sets. It returns
// a *ValidationError listing every failing field, or nil.
func (f Fields) Validate() error {
	errs := map[string]string{}

	if len(strings.TrimSpace(f.Position)) < 2 {
		errs["position"] = "position must be at least 2 characters"
	}
	if len(strings.TrimSpace(f.Company)) < 2 {
		errs["company"] = "company must be at least 2 characters"
	}
	if len(strings.TrimSpace(f.Location)) < 2 {
		errs["location"] = "location must be at least 2 characters"
	}
	if _, ok := validStatuses[strings.ToLower(strings.TrimSpace(f.Status))]; !ok {
		errs["status"] = "status must be one of pending, interview, declined"
	}
	if _, ok := validModes[strings.ToLower(strings.TrimSpace(f.Mode))]; !ok {
		errs["mode"] = "mode must be one of full-time, part-time, internship"
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// KnownStatus reports whether s, lower-cased, is a member of the status
// category set.
func KnownStatus(s string) bool {
	_, ok := validStatuses[strings.ToLower(s)]
	return ok
}
