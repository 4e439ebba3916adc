// Package apperrors defines the error classes the read path reports.
// Callers match with errors.Is against the sentinels.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed request parameters, rejected
	// before any database call.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDataSource marks a failed database round-trip. Retrying is the
	// caller's business, not ours.
	ErrDataSource = errors.New("data source failure")

	// ErrDataIntegrity marks a book referencing an author that does not
	// exist. Points at an upstream write-path or migration defect.
	ErrDataIntegrity = errors.New("data integrity violation")
)

func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func DataSource(err error) error {
	return fmt.Errorf("%w: %s", ErrDataSource, err.Error())
}

func DataIntegrity(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDataIntegrity, fmt.Sprintf(format, args...))
}
