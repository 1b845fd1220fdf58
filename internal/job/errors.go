package job

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound covers both "no such record" and "record owned by someone
// else". The two are deliberately indistinguishable so record existence is
// never leaked across owners.
var ErrNotFound = errors.New("not found")

// ErrUnauthenticated means the caller's identity was not resolved. Mutations
// fail with it before touching storage.
var ErrUnauthenticated = errors.New("unauthenticated")

// ValidationError carries per-field messages for caller display.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid fields: " + strings.Join(keys, ", ")
}
