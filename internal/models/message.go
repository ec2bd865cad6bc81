package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sender and recipient role markers on messages.
const (
	MessageRoleStudent = "student"
	MessageRoleAdmin   = "admin"
)

// Message is one direct message between an administrator and a student.
// Student-to-admin messages carry no recipient id: any administrator reads
// the shared inbox.
type Message struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SenderID      primitive.ObjectID  `bson:"sender_id" json:"sender_id"`
	SenderType    string              `bson:"sender_type" json:"sender_type"`
	RecipientID   *primitive.ObjectID `bson:"recipient_id,omitempty" json:"recipient_id,omitempty"`
	RecipientType string              `bson:"recipient_type" json:"recipient_type"`
	Body          string              `bson:"message" json:"message"`
	Timestamp     time.Time           `bson:"timestamp" json:"timestamp"`
}
