// Package datastore provides error handling helpers for database operations
package datastore

import (
	"strings"

	"github.com/mkarvonen/neutron-go/internal/errors"
)

// dbError creates a properly categorized database error with context
func dbError(err error, operation string, context ...any) error {
	builder := errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation)

	// Add context pairs
	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			builder = builder.Context(key, context[i+1])
		}
	}

	return builder.Build()
}

// notFoundError creates a not found error for a missing record
func notFoundError(resource, identifier string) error {
	return errors.Newf("%s %s not found", resource, identifier).
		Component("datastore").
		Category(errors.CategoryNotFound).
		Context("resource", resource).
		Context("identifier", identifier).
		Build()
}

// IsConstraintViolation reports whether err indicates a unique or primary
// key constraint violation. Matching is textual because the SQLite and MySQL
// drivers surface different error types for the same condition.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "constraint")
}
