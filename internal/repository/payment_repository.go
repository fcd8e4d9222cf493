package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ktmart/marketplace-api/internal/model"
)

// PaymentRepo accesses the `payments` collection.  Payments are append-only.
type PaymentRepo struct{ C *mongo.Collection }

func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{C: db.Collection("payments")}
}

// Insert stores a new payment record and returns its hex id.
func (r *PaymentRepo) Insert(ctx context.Context, p *model.Payment) (string, error) {
	res, err := r.C.InsertOne(ctx, p)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// ByTransactionID fetches a payment by its processor transaction id.  It
// is the idempotency probe of the payment recorder.
func (r *PaymentRepo) ByTransactionID(ctx context.Context, transactionID string) (model.Payment, error) {
	var p model.Payment
	err := r.C.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Payment{}, ErrNotFound
	}
	return p, err
}
