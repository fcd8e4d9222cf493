package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ktmart/marketplace-api/internal/model"
)

// ProductRepo accesses the `products` collection.
type ProductRepo struct{ C *mongo.Collection }

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{C: db.Collection("products")}
}

func (r *ProductRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]model.Product, error) {
	cur, err := r.C.Find(ctx, filter, opts...) // run the query and get a cursor
	if err != nil {
		return nil, err
	}
	products := []model.Product{} // non-nil so empty results serialize as []
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// All returns every product document.
func (r *ProductRepo) All(ctx context.Context) ([]model.Product, error) {
	return r.find(ctx, bson.M{})
}

// ByBrand returns the products whose brand equals name.
func (r *ProductRepo) ByBrand(ctx context.Context, name string) ([]model.Product, error) {
	return r.find(ctx, bson.M{"brand": name})
}

// BySeller returns the products listed by the given seller email.
func (r *ProductRepo) BySeller(ctx context.Context, email string) ([]model.Product, error) {
	return r.find(ctx, bson.M{"seller_email": email})
}

// Advertised returns products with status advertised, newest first.
// Object ids embed the insertion timestamp, so a reverse _id sort orders
// by recency.
func (r *ProductRepo) Advertised(ctx context.Context) ([]model.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	return r.find(ctx, bson.M{"status": model.StatusAdvertised}, opts)
}

// ByID fetches one product by its hex identifier.
func (r *ProductRepo) ByID(ctx context.Context, hex string) (model.Product, error) {
	id, err := objectID(hex)
	if err != nil {
		return model.Product{}, err
	}
	var p model.Product
	err = r.C.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// Insert stores a new product and returns its hex id.
func (r *ProductRepo) Insert(ctx context.Context, p *model.Product) (string, error) {
	res, err := r.C.InsertOne(ctx, p)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Delete removes a product by id.
func (r *ProductRepo) Delete(ctx context.Context, hex string) error {
	id, err := objectID(hex)
	if err != nil {
		return err
	}
	res, err := r.C.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus overwrites the status field of a product.
func (r *ProductRepo) SetStatus(ctx context.Context, hex, status string) error {
	id, err := objectID(hex)
	if err != nil {
		return err
	}
	res, err := r.C.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaid sets status=paid and the processor transaction id on a product.
func (r *ProductRepo) MarkPaid(ctx context.Context, hex, transactionID string) error {
	id, err := objectID(hex)
	if err != nil {
		return err
	}
	res, err := r.C.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": model.StatusPaid, "transactionId": transactionID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
