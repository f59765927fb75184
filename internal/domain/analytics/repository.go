package analytics

import (
	"context"

	"finance-tracker-go/internal/domain/cashflow"
)

type Repository interface {
	// MonthlyTotals groups the scope by stored month and flow direction.
	MonthlyTotals(ctx context.Context, scope YearScope) ([]MonthTotal, error)
	CategoryTotals(ctx context.Context, scope YearScope, direction cashflow.FlowDirection) ([]CategoryTotal, error)
}

// CategoryResolver maps category ids to display names. Ids it cannot resolve
// are absent from the result.
type CategoryResolver interface {
	ResolveNames(ctx context.Context, ownerID string, ids []string) (map[string]string, error)
}
