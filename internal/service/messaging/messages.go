package messaging

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"msgtiers/internal/models"
)

// InsertMessage persists a new message and returns the stored record with
// its generated id and server-assigned timestamp.
func (s *Service) InsertMessage(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	senderID = strings.TrimSpace(senderID)
	receiverID = strings.TrimSpace(receiverID)
	if senderID == "" || receiverID == "" {
		return nil, errors.New("sender_id and receiver_id are required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("message_text cannot be empty")
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (sender_id, receiver_id, message_text, timestamp) VALUES (?, ?, ?, ?)`,
		senderID, receiverID, text, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("message id: %w", err)
	}
	return &models.Message{
		MessageID:   id,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		MessageText: text,
		Timestamp:   now,
	}, nil
}

// Conversation returns every message exchanged between the two identities in
// either direction, ordered by timestamp ascending. An empty conversation is
// a valid result and comes back as an empty, non-nil slice.
func (s *Service) Conversation(ctx context.Context, senderID, receiverID string) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, sender_id, receiver_id, message_text, timestamp
		 FROM messages
		 WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		 ORDER BY timestamp ASC, message_id ASC`,
		senderID, receiverID, receiverID, senderID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch conversation: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.MessageID, &m.SenderID, &m.ReceiverID, &m.MessageText, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// UpdateMessage changes the text of a message, but only where both the id and
// the original sender match. Zero affected rows surfaces as sql.ErrNoRows;
// the caller cannot tell whether the id was unknown or the sender mismatched.
func (s *Service) UpdateMessage(ctx context.Context, messageID int64, senderID, text string) error {
	if messageID <= 0 {
		return errors.New("invalid message id")
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("message_text cannot be empty")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE messages SET message_text = ? WHERE message_id = ? AND sender_id = ?`,
		text, messageID, senderID,
	)
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteMessage removes a message with the same ownership semantics as
// UpdateMessage. Deleting an already-deleted message reports sql.ErrNoRows
// without side effects.
func (s *Service) DeleteMessage(ctx context.Context, messageID int64, senderID string) error {
	if messageID <= 0 {
		return errors.New("invalid message id")
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM messages WHERE message_id = ? AND sender_id = ?`,
		messageID, senderID,
	)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
