package repo

import (
	"errors"
	"github.com/lib/pq"
)

// uniqueViolation reports whether err is a postgres unique-constraint
// violation on the named constraint. Constraint names follow the postgres
// default of table_col1_col2_key. The storage-level constraints are the
// backstop behind every application-level duplicate check: a race that slips
// past a read still fails the insert.
func uniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
