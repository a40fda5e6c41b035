// Package repositories holds one repository per MongoDB collection. Services
// depend on the interfaces; the mongo implementations live alongside.
package repositories

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned for missing documents so callers never need to
// inspect driver errors.
var ErrNotFound = errors.New("document not found")

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
