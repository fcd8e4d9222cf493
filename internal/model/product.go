package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Well-known product status values.  The status field itself is a free
// string: sellers may patch it to anything, and the API does not reject
// values outside this set.
const (
	StatusAvailable  = "available"
	StatusAdvertised = "advertised"
	StatusPaid       = "paid"
	StatusSold       = "sold"
)

// Product represents a document in the `products` collection.  A product
// belongs to a brand and a seller; payment completion stamps it with the
// processor transaction id and flips its status to paid.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Brand         string             `bson:"brand" json:"brand"`
	SellerEmail   string             `bson:"seller_email" json:"seller_email"`
	SellerName    string             `bson:"seller_name,omitempty" json:"seller_name,omitempty"`
	Status        string             `bson:"status" json:"status"`
	ResalePrice   float64            `bson:"resale_price" json:"resale_price"`
	OriginalPrice float64            `bson:"original_price,omitempty" json:"original_price,omitempty"`
	YearsUsed     int                `bson:"years_used,omitempty" json:"years_used,omitempty"`
	Condition     string             `bson:"condition,omitempty" json:"condition,omitempty"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PostedAt      time.Time          `bson:"posted_at,omitempty" json:"posted_at,omitempty"`
}
