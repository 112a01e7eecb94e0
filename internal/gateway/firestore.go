package gateway

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore backs the Store interface with Cloud Firestore, the document
// database the production app writes to.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Create(ctx context.Context, collection string, fields Fields) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, fields Fields, merge bool) error {
	ref := s.client.Collection(collection).Doc(id)
	if merge {
		_, err := ref.Set(ctx, fields, firestore.MergeAll)
		return err
	}
	_, err := ref.Set(ctx, fields)
	return err
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Fields, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return snap.Data(), nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, updates Fields) error {
	ops := make([]firestore.Update, 0, len(updates))
	for k, v := range updates {
		switch t := v.(type) {
		case arrayUnion:
			ops = append(ops, firestore.Update{Path: k, Value: firestore.ArrayUnion(t.elems...)})
		case arrayRemove:
			ops = append(ops, firestore.Update{Path: k, Value: firestore.ArrayRemove(t.elems...)})
		default:
			ops = append(ops, firestore.Update{Path: k, Value: v})
		}
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, ops)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	if len(q.IDsIn) > MaxInIDs {
		return nil, ErrTooManyIDs
	}

	query := s.client.Collection(collection).Query
	for k, v := range q.Eq {
		query = query.Where(k, "==", v)
	}
	if len(q.IDsIn) > 0 {
		query = query.Where(firestore.DocumentID, "in", q.IDsIn)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}
	return out, nil
}
