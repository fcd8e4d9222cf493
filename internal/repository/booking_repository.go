package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ktmart/marketplace-api/internal/model"
)

// BookingRepo accesses the `bookings` collection.
type BookingRepo struct{ C *mongo.Collection }

func NewBookingRepo(db *mongo.Database) *BookingRepo {
	return &BookingRepo{C: db.Collection("bookings")}
}

// Exists reports whether a booking with the same (email, model) pair is
// already present.  Uniqueness is enforced by this pre-insert check, not
// by a store-level constraint.
func (r *BookingRepo) Exists(ctx context.Context, email, productModel string) (bool, error) {
	n, err := r.C.CountDocuments(ctx, bson.M{"email": email, "model": productModel})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Insert stores a new booking and returns its hex id.
func (r *BookingRepo) Insert(ctx context.Context, b *model.Booking) (string, error) {
	res, err := r.C.InsertOne(ctx, b)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// ByEmail returns the bookings made by the given email.
func (r *BookingRepo) ByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	cur, err := r.C.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	bookings := []model.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ByID fetches one booking by its hex identifier.
func (r *BookingRepo) ByID(ctx context.Context, hex string) (model.Booking, error) {
	id, err := objectID(hex)
	if err != nil {
		return model.Booking{}, err
	}
	var b model.Booking
	err = r.C.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// MarkPaid sets paid=true and the processor transaction id on a booking.
func (r *BookingRepo) MarkPaid(ctx context.Context, hex, transactionID string) error {
	id, err := objectID(hex)
	if err != nil {
		return err
	}
	res, err := r.C.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
