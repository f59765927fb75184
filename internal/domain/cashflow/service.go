package cashflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-tracker-go/internal/domain/paging"
	"finance-tracker-go/internal/domain/scope"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize      = 10
	defaultMaxPageSize   = 2000
	defaultExportMaxRows = 10000
	maxNameLength        = 120
)

type Config struct {
	Location        *time.Location
	AmountCap       decimal.Decimal
	DefaultPageSize int
	MaxPageSize     int
	ExportMaxRows   int
}

type Service struct {
	repo     Repository
	entities EntityAccess
	cfg      Config
	now      func() time.Time
}

func NewService(repo Repository, entities EntityAccess, cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if !cfg.AmountCap.IsPositive() {
		cfg.AmountCap = decimal.NewFromInt(200000)
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = defaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = defaultMaxPageSize
	}
	if cfg.ExportMaxRows <= 0 {
		cfg.ExportMaxRows = defaultExportMaxRows
	}

	return &Service{
		repo:     repo,
		entities: entities,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *Service) Location() *time.Location {
	return s.cfg.Location
}

// List returns one page of the caller's entries matching input.Filter
// together with the count and net profit of the whole filtered set.
func (s *Service) List(ctx context.Context, principal scope.Principal, input ListInput) (Page, error) {
	page, err := paging.Normalize(input.PageIndex, input.PageSize, s.cfg.DefaultPageSize, s.cfg.MaxPageSize)
	if err != nil {
		return Page{}, fmt.Errorf("%w: page index or size out of range", ErrInvalidInput)
	}

	predicate, err := s.predicate(ctx, principal, input.EntityIDs, input.Filter)
	if err != nil {
		return Page{}, err
	}
	if predicate.Empty() {
		return emptyPage(), nil
	}

	result, err := s.repo.ListPage(ctx, predicate, page)
	if err != nil {
		return Page{}, err
	}

	return toPage(result), nil
}

// Export returns every matching row. A result larger than the configured
// export limit is refused rather than truncated, so the totals row always
// matches the rows listed.
func (s *Service) Export(ctx context.Context, principal scope.Principal, entityIDs []string, filter FilterSpec) (Page, error) {
	predicate, err := s.predicate(ctx, principal, entityIDs, filter)
	if err != nil {
		return Page{}, err
	}
	if predicate.Empty() {
		return emptyPage(), nil
	}

	result, err := s.repo.ListPage(ctx, predicate, paging.Request{Index: 0, Size: s.cfg.ExportMaxRows})
	if err != nil {
		return Page{}, err
	}
	if result.Total > int64(s.cfg.ExportMaxRows) {
		return Page{}, fmt.Errorf("%w: %d rows match, limit is %d", ErrExportTooLarge, result.Total, s.cfg.ExportMaxRows)
	}

	return toPage(result), nil
}

func (s *Service) Get(ctx context.Context, principal scope.Principal, entryID string) (*EntryRow, error) {
	row, err := s.repo.GetEntry(ctx, principal.EffectiveOwner(), entryID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEntityAllowed(ctx, principal, row.EntityID); err != nil {
		if errors.Is(err, ErrEntityNotAllowed) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *Service) Create(ctx context.Context, principal scope.Principal, input EntryInput) (*Entry, error) {
	input, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	entry := Entry{
		ID:      uuid.NewString(),
		OwnerID: principal.EffectiveOwner(),
	}
	applyInput(&entry, input, s.cfg.Location)

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := s.checkReferences(ctx, tx, principal, input); err != nil {
			return err
		}
		return tx.CreateEntry(ctx, &entry)
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *Service) Update(ctx context.Context, principal scope.Principal, entryID string, input EntryInput) (*Entry, error) {
	input, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	var updated Entry
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetEntry(ctx, principal.EffectiveOwner(), entryID)
		if err != nil {
			return err
		}
		if err := s.ensureEntityAllowed(ctx, principal, current.EntityID); err != nil {
			if errors.Is(err, ErrEntityNotAllowed) {
				return ErrEntryNotFound
			}
			return err
		}
		if err := s.checkReferences(ctx, tx, principal, input); err != nil {
			return err
		}

		entry := current.Entry
		applyInput(&entry, input, s.cfg.Location)
		entry.UpdatedAt = s.now().UTC()

		if err := tx.UpdateEntry(ctx, &entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, principal scope.Principal, entryID string) (*Entry, error) {
	var deleted Entry
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetEntry(ctx, principal.EffectiveOwner(), entryID)
		if err != nil {
			return err
		}
		if err := s.ensureEntityAllowed(ctx, principal, current.EntityID); err != nil {
			if errors.Is(err, ErrEntityNotAllowed) {
				return ErrEntryNotFound
			}
			return err
		}

		ok, err := tx.DeleteEntry(ctx, principal.EffectiveOwner(), entryID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrEntryNotFound
		}
		deleted = current.Entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (s *Service) predicate(ctx context.Context, principal scope.Principal, entityIDs []string, filter FilterSpec) (Predicate, error) {
	allowed, err := s.entities.AllowedIDs(ctx, principal, entityIDs)
	if err != nil {
		return Predicate{}, err
	}

	return Normalize(filter, principal.EffectiveOwner(), allowed, NormalizeOptions{
		Now:       s.now(),
		Location:  s.cfg.Location,
		AmountCap: s.cfg.AmountCap,
	})
}

func (s *Service) ensureEntityAllowed(ctx context.Context, principal scope.Principal, entityID string) error {
	allowed, err := s.entities.AllowedIDs(ctx, principal, []string{entityID})
	if err != nil {
		return err
	}
	if len(allowed) != 1 {
		return ErrEntityNotAllowed
	}
	return nil
}

func (s *Service) checkReferences(ctx context.Context, tx Repository, principal scope.Principal, input EntryInput) error {
	if err := s.ensureEntityAllowed(ctx, principal, input.EntityID); err != nil {
		return err
	}
	exists, err := tx.CategoryExists(ctx, principal.EffectiveOwner(), input.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *Service) validateInput(input EntryInput) (EntryInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.CategoryID = strings.TrimSpace(input.CategoryID)
	input.EntityID = strings.TrimSpace(input.EntityID)

	switch {
	case input.Name == "":
		return input, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case len([]rune(input.Name)) > maxNameLength:
		return input, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, maxNameLength)
	case !input.PaymentType.Valid():
		return input, fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, input.PaymentType)
	case !input.FlowDirection.Valid():
		return input, fmt.Errorf("%w: unknown flow direction %q", ErrInvalidInput, input.FlowDirection)
	case !input.PaymentStatus.Valid():
		return input, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, input.PaymentStatus)
	case input.Amount.IsNegative():
		return input, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	case input.Date.IsZero():
		return input, fmt.Errorf("%w: date is required", ErrInvalidInput)
	case input.CategoryID == "":
		return input, fmt.Errorf("%w: category is required", ErrInvalidInput)
	case input.EntityID == "":
		return input, fmt.Errorf("%w: entity is required", ErrInvalidInput)
	}

	input.Amount = input.Amount.Round(2)
	return input, nil
}

func applyInput(entry *Entry, input EntryInput, loc *time.Location) {
	entry.Name = input.Name
	entry.Description = input.Description
	entry.PaymentType = input.PaymentType
	entry.FlowDirection = input.FlowDirection
	entry.PaymentStatus = input.PaymentStatus
	entry.Amount = input.Amount
	entry.Date = input.Date
	entry.Month = MonthOf(input.Date, loc)
	entry.CategoryID = input.CategoryID
	entry.EntityID = input.EntityID
}

func emptyPage() Page {
	return Page{Rows: []EntryRow{}, Total: 0, TotalProfit: decimal.Zero}
}

func toPage(result PageResult) Page {
	rows := result.Rows
	if rows == nil {
		rows = []EntryRow{}
	}
	return Page{Rows: rows, Total: result.Total, TotalProfit: result.TotalProfit}
}
