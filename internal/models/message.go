package models

import "time"

// Message is a single directed message between two user identities. The
// sender/receiver pair is directional at write time; conversation retrieval
// treats it as symmetric.
type Message struct {
	MessageID   int64     `json:"message_id"`
	SenderID    string    `json:"sender_id"`
	ReceiverID  string    `json:"receiver_id"`
	MessageText string    `json:"message_text"`
	Timestamp   time.Time `json:"timestamp"`
}
