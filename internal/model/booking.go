package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking represents a document in the `bookings` collection.  A buyer may
// hold at most one booking per (email, model) pair; payment completion sets
// Paid and stamps the processor transaction id.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Model         string             `bson:"model" json:"model"`
	ProductID     string             `bson:"product_id,omitempty" json:"product_id,omitempty"`
	ResalePrice   float64            `bson:"resale_price,omitempty" json:"resale_price,omitempty"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Paid          bool               `bson:"paid" json:"paid"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	BookedAt      time.Time          `bson:"booked_at,omitempty" json:"booked_at,omitempty"`
}
