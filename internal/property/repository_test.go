package property

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
)

// countingStore wraps the in-memory store and records the size of every
// ids-in filter it sees, so chunking behaviour can be asserted.
type countingStore struct {
	*gateway.InMemoryStore

	mu       sync.Mutex
	inSizes  []int
	queryCnt int
}

func (s *countingStore) Query(ctx context.Context, collection string, q gateway.Query) ([]gateway.Document, error) {
	s.mu.Lock()
	s.queryCnt++
	if len(q.IDsIn) > 0 {
		s.inSizes = append(s.inSizes, len(q.IDsIn))
	}
	s.mu.Unlock()
	return s.InMemoryStore.Query(ctx, collection, q)
}

func seedProperties(t *testing.T, store gateway.Store, n int) []string {
	t.Helper()
	ctx := context.Background()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id, err := store.Create(ctx, gateway.PropertiesCollection, gateway.Fields{
			"title":        fmt.Sprintf("Property %02d", i),
			"propertyType": "Apartment",
			"listingType":  ListingRent,
			"price":        "KSh 45,000",
			"location":     "Westlands, Nairobi",
			"bedrooms":     2,
			"bathrooms":    1,
			"rating":       float64(i%5) + 0.5,
			"agentId":      "uid0001",
			"agentName":    "Amina Odhiambo",
			"createdAt":    fmt.Sprintf("2024-05-%02dT10:00:00Z", i+1),
		})
		if err != nil {
			t.Fatalf("seeding property: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestGetByIDsChunksOversizedBatches(t *testing.T) {
	store := &countingStore{InMemoryStore: gateway.NewInMemoryStore()}
	ids := seedProperties(t, store, 23)

	repo := NewGatewayRepository(store)
	props, err := repo.GetByIDs(context.Background(), ids)
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}

	if len(props) != 23 {
		t.Fatalf("got %d properties, want 23", len(props))
	}

	sort.Ints(store.inSizes)
	if len(store.inSizes) != 3 {
		t.Fatalf("got %d chunked queries, want 3: %v", len(store.inSizes), store.inSizes)
	}
	if store.inSizes[0] != 3 || store.inSizes[1] != 10 || store.inSizes[2] != 10 {
		t.Errorf("chunk sizes = %v, want [3 10 10]", store.inSizes)
	}

	seen := make(map[string]bool, len(props))
	for _, p := range props {
		if seen[p.ID] {
			t.Errorf("duplicate property %s in result", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestGetByIDsEmptyInput(t *testing.T) {
	repo := NewGatewayRepository(gateway.NewInMemoryStore())
	props, err := repo.GetByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(props) != 0 {
		t.Fatalf("got %d properties, want 0", len(props))
	}
}

func TestFeaturedReturnsTopRated(t *testing.T) {
	store := gateway.NewInMemoryStore()
	seedProperties(t, store, 8)

	repo := NewGatewayRepository(store)
	props, err := repo.Featured(context.Background())
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if len(props) != 5 {
		t.Fatalf("got %d featured properties, want 5", len(props))
	}
	for i := 1; i < len(props); i++ {
		if props[i-1].Rating < props[i].Rating {
			t.Errorf("featured not sorted by rating desc: %v then %v", props[i-1].Rating, props[i].Rating)
		}
	}
}

func TestByAgentFiltersOwner(t *testing.T) {
	store := gateway.NewInMemoryStore()
	ctx := context.Background()
	seedProperties(t, store, 3)
	if _, err := store.Create(ctx, gateway.PropertiesCollection, gateway.Fields{
		"title":     "Someone else's villa",
		"agentId":   "uid0099",
		"createdAt": "2024-06-01T10:00:00Z",
	}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	repo := NewGatewayRepository(store)
	props, err := repo.ByAgent(ctx, "uid0001")
	if err != nil {
		t.Fatalf("ByAgent: %v", err)
	}
	if len(props) != 3 {
		t.Fatalf("got %d properties for agent, want 3", len(props))
	}
	for _, p := range props {
		if p.AgentID != "uid0001" {
			t.Errorf("property %s belongs to %s", p.ID, p.AgentID)
		}
	}
}

func TestGetByIDMissing(t *testing.T) {
	repo := NewGatewayRepository(gateway.NewInMemoryStore())
	if _, err := repo.GetByID(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDisplayPrice(t *testing.T) {
	rent := Property{Price: "KSh 45,000", ListingType: ListingRent}
	if got := rent.DisplayPrice(); got != "KSh 45,000/month" {
		t.Errorf("rent display price = %q", got)
	}
	sale := Property{Price: "KSh 12,500,000", ListingType: ListingSale}
	if got := sale.DisplayPrice(); got != "KSh 12,500,000" {
		t.Errorf("sale display price = %q", got)
	}
}
