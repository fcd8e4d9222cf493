package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ktmart/marketplace-api/internal/model"
)

// BrandRepo reads the `brands` collection.  Brands are seeded out of band
// and never written by this service.
type BrandRepo struct{ C *mongo.Collection }

func NewBrandRepo(db *mongo.Database) *BrandRepo {
	return &BrandRepo{C: db.Collection("brands")}
}

// All returns every brand document.
func (r *BrandRepo) All(ctx context.Context) ([]model.Brand, error) {
	cur, err := r.C.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	brands := []model.Brand{}
	if err := cur.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}
