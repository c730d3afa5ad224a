package repositories

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"dietbro/internal/apperrors"
)

// parseObjectID converts a path parameter into an ObjectID. A malformed id
// is reported as not-found so the response does not leak the identifier
// format the store expects.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NotFoundf("Resource not found with id of %s", id)
	}
	return oid, nil
}

// duplicateKeyField sniffs which unique index a duplicate-key error hit.
// The driver surfaces the index name (email_1, phone_1) in the message.
func duplicateKeyField(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return "email"
	case strings.Contains(msg, "phone"):
		return "phone"
	}
	return "field"
}
