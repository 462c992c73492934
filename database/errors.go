package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Error taxonomy surfaced by the store and the services built on it.
var (
	// ErrStoreUnavailable means the underlying storage engine could not be
	// opened at all. Distinct from an empty store; callers may fall back to
	// the remote mirror.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrDuplicateKey means a unique-index constraint was violated on add.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound means an id or unique key did not resolve to a record.
	ErrNotFound = errors.New("record not found")

	// ErrUnsupportedVersion means a backup snapshot carries a version this
	// build does not understand. No partial restore is attempted.
	ErrUnsupportedVersion = errors.New("unsupported backup version")

	// ErrRestoreFailed means a restore failed after validation; the
	// transaction it ran in has been rolled back.
	ErrRestoreFailed = errors.New("restore failed")
)

// TranslateError maps driver/ORM errors onto the store error taxonomy.
// Anything unrecognized passes through unchanged (a generic storage
// I/O error is surfaced as-is, not retried).
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	// sqlite and postgres report unique violations this way
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") {
		return ErrDuplicateKey
	}
	return err
}
