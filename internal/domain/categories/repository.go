package categories

import (
	"context"
	"time"

	"finance-tracker-go/internal/domain/paging"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListCategories(ctx context.Context, ownerID string, page paging.Request) ([]Category, int64, error)
	GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*Category, error)
	GetCategoriesByIDs(ctx context.Context, ownerID string, categoryIDs []string) ([]Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error)
	CountEntriesByCategoryID(ctx context.Context, ownerID, categoryID string) (int64, error)
}

// NameCache keeps resolved category names per owner for chart labels.
type NameCache interface {
	GetByOwnerID(ownerID string) (map[string]string, bool)
	SetByOwnerID(ownerID string, names map[string]string, ttl time.Duration)
	DeleteByOwnerID(ownerID string)
}
