package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL class 23 code raised by unique indexes.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint failure. The
// mutation gateway maps it onto a duplicate-key domain error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
