package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"finance-tracker-go/internal/domain/cashflow"
	"finance-tracker-go/internal/domain/scope"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidInput = errors.New("invalid input")

type Config struct {
	Location *time.Location
	Locale   string
}

type Service struct {
	repo       Repository
	categories CategoryResolver
	entities   cashflow.EntityAccess
	location   *time.Location
	labels     [12]string
	now        func() time.Time
}

func NewService(repo Repository, categories CategoryResolver, entities cashflow.EntityAccess, cfg Config) *Service {
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	labels, ok := MonthLabels(cfg.Locale)
	if !ok {
		labels, _ = MonthLabels(DefaultLocale)
	}

	return &Service{
		repo:       repo,
		categories: categories,
		entities:   entities,
		location:   location,
		labels:     labels,
		now:        time.Now,
	}
}

// MonthlySeries returns income and expense per month of the current year.
// The result always has twelve points; months without entries are zero.
func (s *Service) MonthlySeries(ctx context.Context, principal scope.Principal, entityIDs []string) ([]MonthlyPoint, error) {
	yearScope, err := s.yearScope(ctx, principal, entityIDs)
	if err != nil {
		return nil, err
	}
	return s.monthly(ctx, yearScope)
}

// CategorySeries sums the current year per category for one direction.
// Categories that no longer resolve are dropped.
func (s *Service) CategorySeries(ctx context.Context, principal scope.Principal, entityIDs []string, direction cashflow.FlowDirection) ([]CategoryPoint, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: unknown flow direction %q", ErrInvalidInput, direction)
	}
	yearScope, err := s.yearScope(ctx, principal, entityIDs)
	if err != nil {
		return nil, err
	}
	return s.byCategory(ctx, yearScope, direction)
}

// Dashboard computes the monthly series and both category series
// concurrently and derives the yearly and current month totals from them.
func (s *Service) Dashboard(ctx context.Context, principal scope.Principal, entityIDs []string) (Dashboard, error) {
	yearScope, err := s.yearScope(ctx, principal, entityIDs)
	if err != nil {
		return Dashboard{}, err
	}

	var (
		monthly []MonthlyPoint
		income  []CategoryPoint
		expense []CategoryPoint
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		points, err := s.monthly(groupCtx, yearScope)
		monthly = points
		return err
	})
	group.Go(func() error {
		points, err := s.byCategory(groupCtx, yearScope, cashflow.FlowIncome)
		income = points
		return err
	})
	group.Go(func() error {
		points, err := s.byCategory(groupCtx, yearScope, cashflow.FlowExpense)
		expense = points
		return err
	})
	if err := group.Wait(); err != nil {
		return Dashboard{}, err
	}

	now := s.now().In(s.location)
	result := Dashboard{
		Year:         now.Year(),
		Monthly:      monthly,
		IncomeByCat:  income,
		ExpenseByCat: expense,
		YearIncome:   decimal.Zero,
		YearExpense:  decimal.Zero,
		CurrentMonth: int(now.Month()),
	}
	for _, point := range monthly {
		result.YearIncome = result.YearIncome.Add(point.Income)
		result.YearExpense = result.YearExpense.Add(point.Expense)
		if point.Month == result.CurrentMonth {
			result.MonthNetProfit = point.Income.Sub(point.Expense)
		}
	}
	result.YearNetProfit = result.YearIncome.Sub(result.YearExpense)

	return result, nil
}

func (s *Service) monthly(ctx context.Context, yearScope YearScope) ([]MonthlyPoint, error) {
	points := make([]MonthlyPoint, 12)
	for i := range points {
		points[i] = MonthlyPoint{
			Month:   i + 1,
			Label:   s.labels[i],
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}
	if len(yearScope.EntityIDs) == 0 {
		return points, nil
	}

	totals, err := s.repo.MonthlyTotals(ctx, yearScope)
	if err != nil {
		return nil, err
	}
	for _, total := range totals {
		if total.Month < 1 || total.Month > 12 {
			continue
		}
		point := &points[total.Month-1]
		switch total.FlowDirection {
		case cashflow.FlowIncome:
			point.Income = point.Income.Add(total.Total)
		case cashflow.FlowExpense:
			point.Expense = point.Expense.Add(total.Total)
		}
	}

	return points, nil
}

func (s *Service) byCategory(ctx context.Context, yearScope YearScope, direction cashflow.FlowDirection) ([]CategoryPoint, error) {
	if len(yearScope.EntityIDs) == 0 {
		return []CategoryPoint{}, nil
	}

	totals, err := s.repo.CategoryTotals(ctx, yearScope, direction)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return []CategoryPoint{}, nil
	}

	ids := make([]string, 0, len(totals))
	for _, total := range totals {
		ids = append(ids, total.CategoryID)
	}
	names, err := s.categories.ResolveNames(ctx, yearScope.OwnerID, ids)
	if err != nil {
		return nil, err
	}

	points := make([]CategoryPoint, 0, len(totals))
	for _, total := range totals {
		name, ok := names[total.CategoryID]
		if !ok {
			continue
		}
		points = append(points, CategoryPoint{
			CategoryID: total.CategoryID,
			Name:       name,
			Value:      total.Total,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		if cmp := points[i].Value.Cmp(points[j].Value); cmp != 0 {
			return cmp > 0
		}
		return points[i].Name < points[j].Name
	})

	return points, nil
}

func (s *Service) yearScope(ctx context.Context, principal scope.Principal, entityIDs []string) (YearScope, error) {
	allowed, err := s.entities.AllowedIDs(ctx, principal, entityIDs)
	if err != nil {
		return YearScope{}, err
	}

	now := s.now().In(s.location)
	return YearScope{
		OwnerID:   principal.EffectiveOwner(),
		EntityIDs: allowed,
		From:      time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, s.location),
		To:        cashflow.EndOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, s.location), s.location),
	}, nil
}
