package categories

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-tracker-go/internal/domain/paging"
)

type fakeCategoryRepo struct {
	categories map[string]*Category
	usage      map[string]int64
	lastPage   paging.Request
	byIDsCalls int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[string]*Category),
		usage:      make(map[string]int64),
	}
}

func (r *fakeCategoryRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeCategoryRepo) ListCategories(ctx context.Context, ownerID string, page paging.Request) ([]Category, int64, error) {
	r.lastPage = page
	var items []Category
	for _, category := range r.categories {
		if category.OwnerID == ownerID {
			items = append(items, *category)
		}
	}
	return items, int64(len(items)), nil
}

func (r *fakeCategoryRepo) GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*Category, error) {
	category, ok := r.categories[categoryID]
	if !ok || category.OwnerID != ownerID {
		return nil, ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) GetCategoriesByIDs(ctx context.Context, ownerID string, categoryIDs []string) ([]Category, error) {
	r.byIDsCalls++
	var items []Category
	for _, id := range categoryIDs {
		if category, ok := r.categories[id]; ok && category.OwnerID == ownerID {
			items = append(items, *category)
		}
	}
	return items, nil
}

func (r *fakeCategoryRepo) CreateCategory(ctx context.Context, category *Category) error {
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) UpdateCategory(ctx context.Context, category *Category) error {
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error) {
	category, ok := r.categories[categoryID]
	if !ok || category.OwnerID != ownerID {
		return false, nil
	}
	delete(r.categories, categoryID)
	return true, nil
}

func (r *fakeCategoryRepo) CountEntriesByCategoryID(ctx context.Context, ownerID, categoryID string) (int64, error) {
	return r.usage[categoryID], nil
}

func TestCreateCategoryTrimsAndScopes(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewService(repo, 10, 100)

	category, err := svc.Create(context.Background(), "owner-a", Input{Name: "  Rent ", Description: " office "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if category.Name != "Rent" || category.Description != "office" {
		t.Fatalf("expected trimmed fields, got %+v", category)
	}
	if category.OwnerID != "owner-a" || category.ID == "" {
		t.Fatalf("expected owned category with id, got %+v", category)
	}

	if _, err := svc.Create(context.Background(), "owner-a", Input{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListCategoriesUsesPageDefaults(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewService(repo, 10, 100)

	items, total, err := svc.List(context.Background(), "owner-a", 2, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if items == nil || total != 0 {
		t.Fatalf("expected empty non-nil list, got %v %d", items, total)
	}
	if repo.lastPage.Offset() != 20 || repo.lastPage.Limit() != 10 {
		t.Fatalf("expected offset 20 limit 10, got %d %d", repo.lastPage.Offset(), repo.lastPage.Limit())
	}
}

func TestUpdateCategoryOfOtherOwnerIsNotFound(t *testing.T) {
	repo := newFakeCategoryRepo()
	repo.categories["cat-1"] = &Category{ID: "cat-1", OwnerID: "owner-a", Name: "Rent"}
	svc := NewService(repo, 10, 100)

	if _, err := svc.Update(context.Background(), "owner-b", "cat-1", Input{Name: "Hijack"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	updated, err := svc.Update(context.Background(), "owner-a", "cat-1", Input{Name: "Office rent"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "Office rent" || repo.categories["cat-1"].Name != "Office rent" {
		t.Fatalf("expected stored rename, got %+v", repo.categories["cat-1"])
	}
}

func TestDeleteCategoryRestrictsWhenReferenced(t *testing.T) {
	repo := newFakeCategoryRepo()
	repo.categories["cat-1"] = &Category{ID: "cat-1", OwnerID: "owner-a", Name: "Rent"}
	repo.usage["cat-1"] = 3
	svc := NewService(repo, 10, 100)

	if err := svc.Delete(context.Background(), "owner-a", "cat-1"); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if _, ok := repo.categories["cat-1"]; !ok {
		t.Fatalf("expected category kept")
	}

	repo.usage["cat-1"] = 0
	if err := svc.Delete(context.Background(), "owner-a", "cat-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.Delete(context.Background(), "owner-a", "cat-1"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestResolveNamesSkipsUnknownIDs(t *testing.T) {
	repo := newFakeCategoryRepo()
	repo.categories["cat-1"] = &Category{ID: "cat-1", OwnerID: "owner-a", Name: "Rent"}
	repo.categories["cat-2"] = &Category{ID: "cat-2", OwnerID: "owner-b", Name: "Other"}
	svc := NewService(repo, 10, 100)

	names, err := svc.ResolveNames(context.Background(), "owner-a", []string{"cat-1", "cat-2", "cat-gone"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(names) != 1 || names["cat-1"] != "Rent" {
		t.Fatalf("expected only cat-1, got %v", names)
	}
}

type mapNameCache map[string]map[string]string

func (c mapNameCache) GetByOwnerID(ownerID string) (map[string]string, bool) {
	names, ok := c[ownerID]
	return names, ok
}

func (c mapNameCache) SetByOwnerID(ownerID string, names map[string]string, ttl time.Duration) {
	c[ownerID] = names
}

func (c mapNameCache) DeleteByOwnerID(ownerID string) {
	delete(c, ownerID)
}

func TestResolveNamesUsesCacheUntilRename(t *testing.T) {
	repo := newFakeCategoryRepo()
	repo.categories["cat-1"] = &Category{ID: "cat-1", OwnerID: "owner-a", Name: "Rent"}
	cache := mapNameCache{}
	svc := NewService(repo, 10, 100).WithNameCache(cache, time.Minute)
	ctx := context.Background()

	if _, err := svc.ResolveNames(ctx, "owner-a", []string{"cat-1"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	names, err := svc.ResolveNames(ctx, "owner-a", []string{"cat-1"})
	if err != nil || names["cat-1"] != "Rent" {
		t.Fatalf("expected cached Rent, got %v err=%v", names, err)
	}
	if repo.byIDsCalls != 1 {
		t.Fatalf("expected one storage lookup, got %d", repo.byIDsCalls)
	}

	if _, err := svc.Update(ctx, "owner-a", "cat-1", Input{Name: "Office rent"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	names, err = svc.ResolveNames(ctx, "owner-a", []string{"cat-1"})
	if err != nil || names["cat-1"] != "Office rent" {
		t.Fatalf("expected renamed category after update, got %v err=%v", names, err)
	}
	if repo.byIDsCalls != 2 {
		t.Fatalf("expected cache dropped on rename, got %d lookups", repo.byIDsCalls)
	}
}
