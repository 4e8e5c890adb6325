package models

import "time"

// User represents a platform user. Users with Provider set to true can
// receive appointments; any user (providers included) can book one.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Provider     bool      `bson:"provider" json:"provider"`
	AvatarID     string    `bson:"avatar_id,omitempty" json:"avatar_id,omitempty"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
