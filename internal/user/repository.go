package user

import (
	"context"
	"errors"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
)

var ErrNotFound = errors.New("user not found")

// Repository provides access to user profile documents.
type Repository interface {
	Get(ctx context.Context, uid string) (Profile, error)
	Create(ctx context.Context, p Profile) error
	// Merge applies a partial profile write, leaving unnamed fields intact.
	Merge(ctx context.Context, uid string, fields gateway.Fields) error
}

// GatewayRepository stores profiles in the users collection of the remote
// data gateway, keyed by auth uid.
type GatewayRepository struct {
	store gateway.Store
}

func NewGatewayRepository(store gateway.Store) *GatewayRepository {
	return &GatewayRepository{store: store}
}

func (r *GatewayRepository) Get(ctx context.Context, uid string) (Profile, error) {
	fields, err := r.store.Get(ctx, gateway.UsersCollection, uid)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return profileFromFields(uid, fields), nil
}

func (r *GatewayRepository) Create(ctx context.Context, p Profile) error {
	return r.store.Set(ctx, gateway.UsersCollection, p.UID, p.fields(), false)
}

func (r *GatewayRepository) Merge(ctx context.Context, uid string, fields gateway.Fields) error {
	return r.store.Set(ctx, gateway.UsersCollection, uid, fields, true)
}
