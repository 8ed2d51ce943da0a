package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // Password is not returned in JSON
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// StoreCredentials are the BigCommerce API credentials a user chose to save,
// keyed by user id.
type StoreCredentials struct {
	UserID      string    `bson:"user_id" json:"-"`
	StoreHash   string    `bson:"store_hash" json:"store_hash"`
	ClientID    string    `bson:"client_id" json:"client_id"`
	AccessToken string    `bson:"access_token" json:"access_token"`
	UpdatedAt   time.Time `bson:"updated_at" json:"-"`
}
