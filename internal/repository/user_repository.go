package repository

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ktmart/marketplace-api/internal/model"
)

// UserRepo accesses the `users` collection.
type UserRepo struct{ C *mongo.Collection }

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{C: db.Collection("users")}
}

func (r *UserRepo) findAll(ctx context.Context, filter bson.M) ([]model.User, error) {
	cur, err := r.C.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// All returns every user document.
func (r *UserRepo) All(ctx context.Context) ([]model.User, error) {
	return r.findAll(ctx, bson.M{})
}

// Buyers returns users that are neither sellers nor admins.  Roles are
// normalized at insert time, but documents written by older deployments
// may lack the field, so the filter excludes the elevated roles instead
// of matching "buyer" directly.
func (r *UserRepo) Buyers(ctx context.Context) ([]model.User, error) {
	return r.findAll(ctx, bson.M{"role": bson.M{"$nin": bson.A{model.RoleSeller, model.RoleAdmin}}})
}

// Sellers returns users holding the seller role.
func (r *UserRepo) Sellers(ctx context.Context) ([]model.User, error) {
	return r.findAll(ctx, bson.M{"role": model.RoleSeller})
}

// ByEmail fetches one user by normalized email.
func (r *UserRepo) ByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.C.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// Exists reports whether a user with the given email is present.
func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	n, err := r.C.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Insert stores a new user and returns its hex id.  The email is
// normalized and the role made explicit before the write.
func (r *UserRepo) Insert(ctx context.Context, u *model.User) (string, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Role = model.NormalizeRole(string(u.Role))
	res, err := r.C.InsertOne(ctx, u)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Delete removes a user by id.
func (r *UserRepo) Delete(ctx context.Context, hex string) error {
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

// GrantAdmin upserts role=admin for the given user id.  Repeating the
// grant on an existing admin matches the same document and changes
// nothing, so the operation is idempotent.
func (r *UserRepo) GrantAdmin(ctx context.Context, hex string) error {
	return r.grant(ctx, hex, bson.M{"role": model.RoleAdmin})
}

// MarkGenuineSeller upserts genuine_seller=true for the given user id.
func (r *UserRepo) MarkGenuineSeller(ctx context.Context, hex string) error {
	return r.grant(ctx, hex, bson.M{"genuine_seller": true})
}

func (r *UserRepo) grant(ctx context.Context, hex string, set bson.M) error {
	id, err := objectID(hex)
	if err != nil {
		return err
	}
	opts := options.Update().SetUpsert(true)
	_, err = r.C.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts)
	return err
}
