package gateway

import (
	"context"
	"errors"
)

// Collections used by the application. Users are keyed by their auth uid,
// properties are auto-keyed by the store.
const (
	UsersCollection      = "users"
	PropertiesCollection = "properties"
)

// MaxInIDs is the store's limit on "in" query identifier sets. Callers that
// need more must chunk (see property.Repository.GetByIDs).
const MaxInIDs = 10

var (
	ErrNotFound   = errors.New("document not found")
	ErrTooManyIDs = errors.New("in query accepts at most 10 ids")
)

// Fields is the raw field map of a document.
type Fields = map[string]interface{}

// Document pairs a document id with its fields.
type Document struct {
	ID     string
	Fields Fields
}

// Query describes the simple query shapes the store supports: equality
// filters, ordering, a result limit and an "in" filter on document id.
type Query struct {
	Eq      Fields
	OrderBy string
	Desc    bool
	Limit   int
	IDsIn   []string
}

// Store is the document side of the remote data gateway. Persistence, query
// execution and consistency all belong to the backing service; the app only
// issues requests against it.
type Store interface {
	// Create inserts an auto-keyed document and returns the new id.
	Create(ctx context.Context, collection string, fields Fields) (string, error)
	// Set writes a keyed document. With merge true existing fields not named
	// in fields are left untouched.
	Set(ctx context.Context, collection, id string, fields Fields, merge bool) error
	// Get returns the fields of a document, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Fields, error)
	// Update applies a partial update. Values may be the ArrayUnion and
	// ArrayRemove transforms, which are idempotent and commutative.
	Update(ctx context.Context, collection, id string, updates Fields) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
}

// arrayUnion and arrayRemove are sentinel update values translated by each
// Store implementation into its native set operations.
type arrayUnion struct{ elems []interface{} }
type arrayRemove struct{ elems []interface{} }

// ArrayUnion adds elems to an array field, skipping values already present.
func ArrayUnion(elems ...interface{}) interface{} { return arrayUnion{elems: elems} }

// ArrayRemove removes all occurrences of elems from an array field.
func ArrayRemove(elems ...interface{}) interface{} { return arrayRemove{elems: elems} }
