package saved

import (
	"context"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
)

// Repository tracks which properties a user has bookmarked. The set lives
// on the user document itself as an array of property ids.
type Repository interface {
	Add(ctx context.Context, uid, propertyID string) error
	Remove(ctx context.Context, uid, propertyID string) error
	IDs(ctx context.Context, uid string) ([]string, error)
}

type GatewayRepository struct {
	store gateway.Store
}

func NewGatewayRepository(store gateway.Store) *GatewayRepository {
	return &GatewayRepository{store: store}
}

// Add is idempotent: the array-union transform ignores ids already present.
func (r *GatewayRepository) Add(ctx context.Context, uid, propertyID string) error {
	return r.store.Update(ctx, gateway.UsersCollection, uid, gateway.Fields{
		"savedProperties": gateway.ArrayUnion(propertyID),
	})
}

// Remove is idempotent as well: removing an absent id is a no-op.
func (r *GatewayRepository) Remove(ctx context.Context, uid, propertyID string) error {
	return r.store.Update(ctx, gateway.UsersCollection, uid, gateway.Fields{
		"savedProperties": gateway.ArrayRemove(propertyID),
	})
}

func (r *GatewayRepository) IDs(ctx context.Context, uid string) ([]string, error) {
	fields, err := r.store.Get(ctx, gateway.UsersCollection, uid)
	if err != nil {
		return nil, err
	}
	return gateway.StringsField(fields, "savedProperties"), nil
}
