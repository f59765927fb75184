package inmemory

import (
	"testing"
	"time"
)

func TestCategoryNamesCacheExpires(t *testing.T) {
	cache := NewCategoryNamesCache()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.SetByOwnerID("owner-a", map[string]string{"cat-1": "Rent"}, time.Minute)
	names, ok := cache.GetByOwnerID("owner-a")
	if !ok || names["cat-1"] != "Rent" {
		t.Fatalf("expected cached names, got %v %v", names, ok)
	}

	names["cat-1"] = "mutated"
	again, _ := cache.GetByOwnerID("owner-a")
	if again["cat-1"] != "Rent" {
		t.Fatalf("expected cache isolated from caller mutation, got %v", again)
	}

	if _, ok := cache.GetByOwnerID("owner-b"); ok {
		t.Fatalf("expected miss for another owner")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.GetByOwnerID("owner-a"); ok {
		t.Fatalf("expected expired entry")
	}
}

func TestCategoryNamesCacheDeleteAndZeroTTL(t *testing.T) {
	cache := NewCategoryNamesCache()

	cache.SetByOwnerID("owner-a", map[string]string{"cat-1": "Rent"}, time.Minute)
	cache.DeleteByOwnerID("owner-a")
	if _, ok := cache.GetByOwnerID("owner-a"); ok {
		t.Fatalf("expected deleted entry")
	}

	cache.SetByOwnerID("owner-a", map[string]string{"cat-1": "Rent"}, 0)
	if _, ok := cache.GetByOwnerID("owner-a"); ok {
		t.Fatalf("expected zero ttl to skip caching")
	}
}
