package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates a referenced quote or counter does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an atomic counter or revision operation lost its
	// race. Callers may retry the whole transaction; it is never merged
	// silently.
	ErrConflict = errors.New("concurrent update conflict")
)

// asConflict maps SQLite busy/locked errors onto ErrConflict so callers can
// branch with errors.Is without knowing the driver.
func asConflict(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") {
		return errors.Join(ErrConflict, err)
	}
	return err
}
