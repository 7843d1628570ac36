package messaging

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"msgtiers/internal/models"
	"msgtiers/internal/storage"
)

// RegisterUser creates a user with the supplied credentials. Uniqueness is
// enforced by the primary key constraint rather than a separate existence
// check, so two concurrent registrations cannot both succeed.
func (s *Service) RegisterUser(ctx context.Context, userID, password string) (*models.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || password == "" {
		return nil, errors.New("user_id and password are required")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, password) VALUES (?, ?)`,
		userID, password,
	)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &models.User{UserID: userID, Password: password}, nil
}

// CheckLogin looks up the user and compares the stored password. An unknown
// user or a wrong password is an informational result, not an error.
func (s *Service) CheckLogin(ctx context.Context, userID, password string) (models.LoginResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return models.LoginResult{}, errors.New("user_id is required")
	}

	var stored string
	err := s.db.QueryRowContext(ctx,
		`SELECT password FROM users WHERE user_id = ?`, userID,
	).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LoginResult{}, nil
		}
		return models.LoginResult{}, fmt.Errorf("query user: %w", err)
	}

	return models.LoginResult{
		UserExists:      true,
		PasswordMatches: stored == password,
	}, nil
}
