// Package sqlstore implements the repository ports on top of gorm. The same
// code serves PostgreSQL and SQLite; only the migrations differ per backend.
package sqlstore

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fastygo/alle/domain"
)

// Clock returns the current time.
type Clock func() time.Time

// SystemClock is UTC wall time truncated to the precision both backends keep.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Option customises a repository.
type Option func(*base)

// WithClock replaces the time source.
func WithClock(c Clock) Option {
	return func(b *base) {
		if c != nil {
			b.now = c
		}
	}
}

type base struct {
	db  *gorm.DB
	now Clock
}

func newBase(db *gorm.DB, opts []Option) base {
	b := base{db: db, now: SystemClock}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// touch returns a fresh updated_at that is strictly after prev.
func (b base) touch(prev time.Time) time.Time {
	now := b.now()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

// notFound maps gorm's missing-row error onto the given domain error and
// wraps anything else as a database error.
func notFound(err error, missing *domain.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return missing
	}
	return dbError(err)
}

func dbError(err error) error {
	if err == nil {
		return nil
	}
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	return domain.DatabaseError(err)
}

// isUniqueViolation covers gorm's translated error plus the raw texts of
// lib/pq, pgx and modernc, which gorm does not translate for every driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func required(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.NewError(domain.ErrCodeInvalid, name+" is required")
	}
	return value, nil
}
