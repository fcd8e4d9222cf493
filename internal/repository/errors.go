// Package repository implements the document-store access layer.  Each
// repository wraps one MongoDB collection and exposes the handful of
// find/insert/update/delete operations the handlers need.  Sentinel errors
// defined here let handlers map store outcomes onto HTTP statuses without
// inspecting driver errors.
package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup matches no document.  Handlers
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrInvalidID is returned when a path identifier is not a valid object id.
// Handlers translate this into an HTTP 400 response instead of letting the
// raw driver error escape.
var ErrInvalidID = errors.New("invalid id")

// objectID parses a hex identifier from the request path, mapping parse
// failures to ErrInvalidID.
func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
