package cashflow

import (
	"context"

	"finance-tracker-go/internal/domain/paging"
	"finance-tracker-go/internal/domain/scope"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// ListPage returns one page of rows plus the total count and net profit
	// of every row matching predicate, read from a single snapshot.
	ListPage(ctx context.Context, predicate Predicate, page paging.Request) (PageResult, error)
	GetEntry(ctx context.Context, ownerID, entryID string) (*EntryRow, error)
	CreateEntry(ctx context.Context, entry *Entry) error
	UpdateEntry(ctx context.Context, entry *Entry) error
	DeleteEntry(ctx context.Context, ownerID, entryID string) (bool, error)
	CategoryExists(ctx context.Context, ownerID, categoryID string) (bool, error)
}

// EntityAccess narrows requested entity ids to the ones the principal may see.
type EntityAccess interface {
	AllowedIDs(ctx context.Context, principal scope.Principal, requested []string) ([]string, error)
}
