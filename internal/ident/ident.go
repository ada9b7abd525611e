// Package ident validates and generates entity identifiers in the document
// store's ObjectID scheme without touching storage.
package ident

import "go.mongodb.org/mongo-driver/bson/primitive"

// Valid reports whether id is a 24 character hex ObjectID.
func Valid(id string) bool {
	return primitive.IsValidObjectID(id)
}

// ObjectID converts a valid id; ok is false for malformed input.
func ObjectID(id string) (oid primitive.ObjectID, ok bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// New returns a fresh identifier, used by the in-memory repositories.
func New() string {
	return primitive.NewObjectID().Hex()
}
