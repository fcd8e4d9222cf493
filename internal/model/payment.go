package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment represents a document in the `payments` collection.  Payments are
// append-only: recording one marks the referenced product and booking as
// paid, but the payment document itself is never updated.  TransactionID
// doubles as the idempotency key for replayed submissions.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID     string             `bson:"product_id" json:"product_id"`
	BookingID     string             `bson:"booking_id" json:"booking_id"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Price         float64            `bson:"price,omitempty" json:"price,omitempty"`
	AmountMinor   int64              `bson:"amount_minor,omitempty" json:"amount_minor,omitempty"`
	Currency      string             `bson:"currency,omitempty" json:"currency,omitempty"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
