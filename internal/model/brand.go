package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Brand represents a document in the `brands` collection.  Brands are
// read-only from this service's perspective; they are seeded out of band.
type Brand struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
}
