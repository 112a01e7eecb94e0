package property

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
)

var ErrNotFound = errors.New("property not found")

const featuredLimit = 5

// Repository provides access to property documents.
type Repository interface {
	// List returns all properties, newest first.
	List(ctx context.Context) ([]Property, error)
	// Featured returns the top-rated properties for the home screen.
	Featured(ctx context.Context) ([]Property, error)
	// ByAgent returns the properties listed by one agent, newest first.
	ByAgent(ctx context.Context, agentID string) ([]Property, error)
	GetByID(ctx context.Context, id string) (Property, error)
	// GetByIDs batch-fetches properties, chunking the id set to fit the
	// gateway's "in" query limit. Ordering across chunks is not guaranteed.
	GetByIDs(ctx context.Context, ids []string) ([]Property, error)
	Create(ctx context.Context, p Property) (Property, error)
	Update(ctx context.Context, id string, updates gateway.Fields) error
	Delete(ctx context.Context, id string) error
}

// GatewayRepository stores properties in the properties collection of the
// remote data gateway.
type GatewayRepository struct {
	store gateway.Store
}

func NewGatewayRepository(store gateway.Store) *GatewayRepository {
	return &GatewayRepository{store: store}
}

func (r *GatewayRepository) List(ctx context.Context) ([]Property, error) {
	docs, err := r.store.Query(ctx, gateway.PropertiesCollection, gateway.Query{
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(docs), nil
}

func (r *GatewayRepository) Featured(ctx context.Context) ([]Property, error) {
	docs, err := r.store.Query(ctx, gateway.PropertiesCollection, gateway.Query{
		OrderBy: "rating",
		Desc:    true,
		Limit:   featuredLimit,
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(docs), nil
}

func (r *GatewayRepository) ByAgent(ctx context.Context, agentID string) ([]Property, error) {
	docs, err := r.store.Query(ctx, gateway.PropertiesCollection, gateway.Query{
		Eq:      gateway.Fields{"agentId": agentID},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(docs), nil
}

func (r *GatewayRepository) GetByID(ctx context.Context, id string) (Property, error) {
	fields, err := r.store.Get(ctx, gateway.PropertiesCollection, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return Property{}, ErrNotFound
		}
		return Property{}, err
	}
	return fromFields(id, fields), nil
}

func (r *GatewayRepository) GetByIDs(ctx context.Context, ids []string) ([]Property, error) {
	if len(ids) == 0 {
		return []Property{}, nil
	}

	chunks := chunkIDs(ids, gateway.MaxInIDs)
	results := make([][]Property, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			docs, err := r.store.Query(gctx, gateway.PropertiesCollection, gateway.Query{IDsIn: chunk})
			if err != nil {
				return err
			}
			results[i] = decodeAll(docs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(ids))
	out := make([]Property, 0, len(ids))
	for _, part := range results {
		for _, p := range part {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *GatewayRepository) Create(ctx context.Context, p Property) (Property, error) {
	id, err := r.store.Create(ctx, gateway.PropertiesCollection, p.fields())
	if err != nil {
		return Property{}, err
	}
	p.ID = id
	return p, nil
}

func (r *GatewayRepository) Update(ctx context.Context, id string, updates gateway.Fields) error {
	updates["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	err := r.store.Update(ctx, gateway.PropertiesCollection, id, updates)
	if errors.Is(err, gateway.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *GatewayRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, gateway.PropertiesCollection, id)
}

func decodeAll(docs []gateway.Document) []Property {
	out := make([]Property, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromFields(d.ID, d.Fields))
	}
	return out
}

func chunkIDs(ids []string, size int) [][]string {
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
