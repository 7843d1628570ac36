// Package messaging owns the persistent store of messages and users. All
// referential rules (ownership, uniqueness) are enforced here; the handlers
// above it only shape requests and responses.
package messaging

import (
	"database/sql"
	"errors"
)

// ErrUserExists reports a duplicate registration.
var ErrUserExists = errors.New("user already exists")

// Service handles message and user persistence.
type Service struct {
	db     *sql.DB
	driver string
}

// NewService builds a new messaging service on top of an open database.
func NewService(db *sql.DB, driver string) *Service {
	return &Service{db: db, driver: driver}
}

// Driver returns the configured storage driver name.
func (s *Service) Driver() string {
	return s.driver
}
