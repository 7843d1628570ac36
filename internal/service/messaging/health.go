package messaging

import (
	"context"
	"fmt"

	"msgtiers/internal/storage"
)

// Ping verifies store reachability.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// MessageCount returns the total number of stored messages.
func (s *Service) MessageCount(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

// Diagnostics reports the server version and message count for the
// test-connection endpoint.
func (s *Service) Diagnostics(ctx context.Context) (string, int64, error) {
	version, err := storage.Version(ctx, s.db, s.driver)
	if err != nil {
		return "", 0, err
	}
	count, err := s.MessageCount(ctx)
	if err != nil {
		return "", 0, err
	}
	return version, count, nil
}
