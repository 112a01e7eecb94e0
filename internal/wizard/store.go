package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

const draftTTL = 30 * time.Minute

var ErrDraftNotFound = errors.New("draft not found")

type draft struct {
	mu       sync.Mutex
	uid      string
	landlord *LandlordFlow
	listing  *ListingFlow
	expires  time.Time
}

// Store keeps in-flight wizard drafts in memory, keyed by a random id.
// Drafts expire lazily: a stale entry is dropped the next time it is
// touched or when a new draft is created.
type Store struct {
	mu     sync.Mutex
	drafts map[string]*draft
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{drafts: make(map[string]*draft), now: time.Now}
}

func (s *Store) CreateLandlord(uid string) string {
	return s.create(uid, &draft{uid: uid, landlord: NewLandlordFlow()})
}

func (s *Store) CreateListing(uid string) string {
	return s.create(uid, &draft{uid: uid, listing: NewListingFlow()})
}

func (s *Store) create(uid string, d *draft) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, old := range s.drafts {
		if now.After(old.expires) {
			delete(s.drafts, id)
		}
	}

	d.expires = now.Add(draftTTL)
	id := uuid.NewString()
	s.drafts[id] = d
	return id
}

// WithLandlord runs fn against the draft's landlord flow under the
// draft's own lock, so concurrent requests for the same draft id cannot
// interleave mid-mutation. Drafts belonging to another user are refused.
func (s *Store) WithLandlord(id, uid string, fn func(*LandlordFlow) error) error {
	d, err := s.get(id, uid)
	if err != nil {
		return err
	}
	if d.landlord == nil {
		return ErrDraftNotFound
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d.landlord)
}

// WithListing is the listing-flow counterpart of WithLandlord.
func (s *Store) WithListing(id, uid string, fn func(*ListingFlow) error) error {
	d, err := s.get(id, uid)
	if err != nil {
		return err
	}
	if d.listing == nil {
		return ErrDraftNotFound
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d.listing)
}

func (s *Store) get(id, uid string) (*draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok || d.uid != uid {
		return nil, ErrDraftNotFound
	}
	if s.now().After(d.expires) {
		delete(s.drafts, id)
		return nil, ErrDraftNotFound
	}
	d.expires = s.now().Add(draftTTL)
	return d, nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}
