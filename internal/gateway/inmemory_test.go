package gateway

import (
	"context"
	"testing"
)

func TestArrayUnionAndRemoveAreIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	if err := store.Set(ctx, UsersCollection, "u1", Fields{"savedProperties": []string{"p1"}}, false); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// adding an already-present id is a no-op
	for i := 0; i < 2; i++ {
		if err := store.Update(ctx, UsersCollection, "u1", Fields{"savedProperties": ArrayUnion("p2")}); err != nil {
			t.Fatalf("union failed: %v", err)
		}
	}
	doc, _ := store.Get(ctx, UsersCollection, "u1")
	saved := asSlice(doc["savedProperties"])
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved ids after double union, got %v", saved)
	}

	// removing twice leaves the original set
	for i := 0; i < 2; i++ {
		if err := store.Update(ctx, UsersCollection, "u1", Fields{"savedProperties": ArrayRemove("p2")}); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
	}
	doc, _ = store.Get(ctx, UsersCollection, "u1")
	saved = asSlice(doc["savedProperties"])
	if len(saved) != 1 || saved[0] != "p1" {
		t.Fatalf("expected original set after union/remove round trip, got %v", saved)
	}
}

func TestQueryOrderLimitAndEq(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	seed := []Fields{
		{"title": "A", "rating": 2, "agentId": "x", "createdAt": "2025-01-01T00:00:00Z"},
		{"title": "B", "rating": 5, "agentId": "y", "createdAt": "2025-01-03T00:00:00Z"},
		{"title": "C", "rating": 4, "agentId": "x", "createdAt": "2025-01-02T00:00:00Z"},
	}
	for _, f := range seed {
		if _, err := store.Create(ctx, PropertiesCollection, f); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	docs, err := store.Query(ctx, PropertiesCollection, Query{OrderBy: "createdAt", Desc: true})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if docs[0].Fields["title"] != "B" || docs[2].Fields["title"] != "A" {
		t.Fatalf("unexpected createdAt ordering: %v", docs)
	}

	docs, err = store.Query(ctx, PropertiesCollection, Query{OrderBy: "rating", Desc: true, Limit: 2})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(docs) != 2 || docs[0].Fields["title"] != "B" || docs[1].Fields["title"] != "C" {
		t.Fatalf("unexpected rating ordering: %v", docs)
	}

	docs, err = store.Query(ctx, PropertiesCollection, Query{Eq: Fields{"agentId": "x"}})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs for agent x, got %d", len(docs))
	}
}

func TestQueryRejectsOversizedInFilter(t *testing.T) {
	store := NewInMemoryStore()
	ids := make([]string, MaxInIDs+1)
	for i := range ids {
		ids[i] = "id"
	}
	if _, err := store.Query(context.Background(), PropertiesCollection, Query{IDsIn: ids}); err != ErrTooManyIDs {
		t.Fatalf("expected ErrTooManyIDs, got %v", err)
	}
}

func TestSetMergeKeepsUnnamedFields(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	store.Set(ctx, UsersCollection, "u1", Fields{"name": "Asha", "email": "a@example.com"}, false)
	store.Set(ctx, UsersCollection, "u1", Fields{"phone": "0712345678"}, true)

	doc, err := store.Get(ctx, UsersCollection, "u1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if doc["email"] != "a@example.com" || doc["phone"] != "0712345678" {
		t.Fatalf("merge lost fields: %v", doc)
	}
}

func TestUnverifiedSignInLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	auth := NewInMemoryAuthenticator()

	acc, err := auth.CreateAccount(ctx, "new@example.com", "secret123", "New User")
	if err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	if err := auth.SendVerificationEmail(ctx, acc.UID); err != nil {
		t.Fatalf("send verification failed: %v", err)
	}

	if _, err := auth.SignIn(ctx, "new@example.com", "secret123"); err != ErrEmailNotVerified {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}

	if err := auth.MarkVerified(acc.UID); err != nil {
		t.Fatalf("mark verified failed: %v", err)
	}
	signed, err := auth.SignIn(ctx, "new@example.com", "secret123")
	if err != nil {
		t.Fatalf("verified sign-in failed: %v", err)
	}
	if signed.UID != acc.UID {
		t.Fatalf("unexpected account: %+v", signed)
	}

	if _, err := auth.SignIn(ctx, "new@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
