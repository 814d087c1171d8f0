package models

import "time"

// MessageType distinguishes chat text from synthesized system entries.
type MessageType string

const (
	MessageText   MessageType = "text"
	MessageSystem MessageType = "system"
)

// SenderType identifies which side of the room authored a message.
type SenderType string

const (
	SenderClient       SenderType = "client"
	SenderPractitioner SenderType = "practitioner"
	SenderSystem       SenderType = "system"
)

// SystemSender is the literal sender id used for synthesized messages.
const SystemSender = "system"

// Message is a single chat entry within a ConsultationRoom. Append-only;
// Read is the only mutable field, flipped when a non-sender views the room.
type Message struct {
	ID         string      `bson:"id" json:"id"`
	RoomID     string      `bson:"room_id" json:"roomId"`
	Type       MessageType `bson:"type" json:"type"`
	Content    string      `bson:"content" json:"content"`
	Sender     string      `bson:"sender" json:"sender"`
	SenderName string      `bson:"sender_name" json:"senderName"`
	SenderType SenderType  `bson:"sender_type" json:"senderType"`
	Timestamp  time.Time   `bson:"timestamp" json:"timestamp"`
	Read       bool        `bson:"read" json:"read"`
}
