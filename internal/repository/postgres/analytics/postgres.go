package analytics

import (
	"context"

	analyticsdomain "finance-tracker-go/internal/domain/analytics"
	cashflowdomain "finance-tracker-go/internal/domain/cashflow"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// MonthlyTotals groups by the stored month column, which the write path keeps
// equal to the month of date in the application timezone.
func (r *PostgresRepository) MonthlyTotals(ctx context.Context, scope analyticsdomain.YearScope) ([]analyticsdomain.MonthTotal, error) {
	if len(scope.EntityIDs) == 0 {
		return []analyticsdomain.MonthTotal{}, nil
	}

	query := "SELECT cf.month AS month, cf.flow_direction AS flow_direction, COALESCE(SUM(cf.amount), 0) AS total " +
		"FROM cash_flows cf " +
		"WHERE cf.owner_id = ? AND cf.entity_id IN ? AND cf.date >= ? AND cf.date <= ? " +
		"GROUP BY cf.month, cf.flow_direction " +
		"ORDER BY cf.month"

	var rows []analyticsdomain.MonthTotal
	if err := r.db.WithContext(ctx).Raw(query, scope.OwnerID, scope.EntityIDs, scope.From, scope.To).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *PostgresRepository) CategoryTotals(ctx context.Context, scope analyticsdomain.YearScope, direction cashflowdomain.FlowDirection) ([]analyticsdomain.CategoryTotal, error) {
	if len(scope.EntityIDs) == 0 {
		return []analyticsdomain.CategoryTotal{}, nil
	}

	query := "SELECT cf.category_id AS category_id, COALESCE(SUM(cf.amount), 0) AS total " +
		"FROM cash_flows cf " +
		"WHERE cf.owner_id = ? AND cf.entity_id IN ? AND cf.date >= ? AND cf.date <= ? AND cf.flow_direction = ? " +
		"GROUP BY cf.category_id " +
		"ORDER BY total DESC"

	var rows []analyticsdomain.CategoryTotal
	if err := r.db.WithContext(ctx).Raw(query, scope.OwnerID, scope.EntityIDs, scope.From, scope.To, string(direction)).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
