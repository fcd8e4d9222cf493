package model

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the access level of a user.  It is stored as a plain string in
// the `users` collection.  Every persisted document carries an explicit
// role; NormalizeRole maps missing or unknown values to RoleBuyer at the
// write boundary so absence never has to imply anything downstream.
type Role string

const (
	RoleBuyer  Role = "buyer"  // default role; may book products
	RoleSeller Role = "seller" // may list products for resale
	RoleAdmin  Role = "admin"  // may grant roles and verify sellers
)

// NormalizeRole maps an arbitrary role string onto one of the three known
// roles.  Anything that is not "seller" or "admin" is a buyer.
func NormalizeRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleSeller):
		return RoleSeller
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleBuyer
	}
}

// User represents a document in the `users` collection.
//
// Fields:
//  ID            – document identifier.
//  Name          – display name.
//  Email         – unique email address; the identity carried in tokens.
//  Role          – buyer, seller or admin.
//  GenuineSeller – set once by an admin to mark a verified seller.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Role          Role               `bson:"role" json:"role"`
	GenuineSeller bool               `bson:"genuine_seller" json:"genuine_seller"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsSeller reports whether the user holds the seller role.
func (u User) IsSeller() bool { return u.Role == RoleSeller }

// IsBuyer reports whether the user is a buyer.  A user whose role is
// neither seller nor admin counts as a buyer.
func (u User) IsBuyer() bool { return u.Role != RoleSeller && u.Role != RoleAdmin }
