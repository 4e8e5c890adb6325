package models

import "time"

// File is an uploaded avatar image. PublicID is the identifier assigned by
// the storage backend, URL the public delivery address.
type File struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	PublicID  string    `bson:"public_id" json:"-"`
	URL       string    `bson:"url" json:"url"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
