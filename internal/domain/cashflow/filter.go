package cashflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FilterSpec is the caller supplied filter. Every field is optional. A nil
// slice means the field is not restricted; a non-nil empty slice means the
// caller selected nothing and the filter matches no rows.
type FilterSpec struct {
	Name           *string
	CategoryIDs    []string
	PaymentTypes   []PaymentType
	FlowDirections []FlowDirection
	Statuses       []PaymentStatus
	Amount         *AmountRange
	Date           *DateRange
}

type AmountRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Membership restricts a column to a set of values. The zero value is
// unrestricted.
type Membership[T ~string] struct {
	restricted bool
	values     []T
}

func AnyOf[T ~string]() Membership[T] {
	return Membership[T]{}
}

func OneOf[T ~string](values ...T) Membership[T] {
	return Membership[T]{restricted: true, values: values}
}

func (m Membership[T]) Restricted() bool {
	return m.restricted
}

func (m Membership[T]) Values() []T {
	return m.values
}

// MatchesNone reports an explicit empty selection.
func (m Membership[T]) MatchesNone() bool {
	return m.restricted && len(m.values) == 0
}

// Predicate is the canonical form of a FilterSpec. OwnerID and EntityIDs are
// always applied; the remaining fields carry their own absence semantics.
type Predicate struct {
	OwnerID        string
	EntityIDs      []string
	NameContains   string
	CategoryIDs    Membership[string]
	PaymentTypes   Membership[PaymentType]
	FlowDirections Membership[FlowDirection]
	Statuses       Membership[PaymentStatus]
	MinAmount      decimal.Decimal
	MaxAmount      decimal.Decimal
	From           time.Time
	To             time.Time
}

// Empty reports a predicate no row can satisfy. Executors return an empty
// result for it without touching storage.
func (p Predicate) Empty() bool {
	return p.OwnerID == "" ||
		len(p.EntityIDs) == 0 ||
		p.CategoryIDs.MatchesNone() ||
		p.PaymentTypes.MatchesNone() ||
		p.FlowDirections.MatchesNone() ||
		p.Statuses.MatchesNone() ||
		p.MinAmount.GreaterThan(p.MaxAmount) ||
		p.From.After(p.To)
}

type NormalizeOptions struct {
	Now       time.Time
	Location  *time.Location
	AmountCap decimal.Decimal
}

// Normalize validates spec and turns it into a Predicate scoped to ownerID
// and entityIDs. Missing date bounds default to the current month; explicit
// bounds are widened to whole days in opts.Location.
func Normalize(spec FilterSpec, ownerID string, entityIDs []string, opts NormalizeOptions) (Predicate, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	predicate := Predicate{
		OwnerID:   strings.TrimSpace(ownerID),
		EntityIDs: normalizeIDs(entityIDs),
		MinAmount: decimal.Zero,
		MaxAmount: opts.AmountCap,
	}

	if spec.Name != nil {
		predicate.NameContains = strings.TrimSpace(*spec.Name)
	}

	if spec.CategoryIDs != nil {
		predicate.CategoryIDs = OneOf(normalizeIDs(spec.CategoryIDs)...)
	}

	if spec.PaymentTypes != nil {
		for _, value := range spec.PaymentTypes {
			if !value.Valid() {
				return Predicate{}, fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, value)
			}
		}
		predicate.PaymentTypes = OneOf(spec.PaymentTypes...)
	}

	if spec.FlowDirections != nil {
		for _, value := range spec.FlowDirections {
			if !value.Valid() {
				return Predicate{}, fmt.Errorf("%w: unknown flow direction %q", ErrInvalidInput, value)
			}
		}
		predicate.FlowDirections = OneOf(spec.FlowDirections...)
	}

	if spec.Statuses != nil {
		for _, value := range spec.Statuses {
			if !value.Valid() {
				return Predicate{}, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, value)
			}
		}
		predicate.Statuses = OneOf(spec.Statuses...)
	}

	if spec.Amount != nil {
		if spec.Amount.Min != nil {
			if spec.Amount.Min.IsNegative() {
				return Predicate{}, fmt.Errorf("%w: minimum amount must not be negative", ErrInvalidInput)
			}
			predicate.MinAmount = *spec.Amount.Min
		}
		if spec.Amount.Max != nil {
			if spec.Amount.Max.IsNegative() {
				return Predicate{}, fmt.Errorf("%w: maximum amount must not be negative", ErrInvalidInput)
			}
			predicate.MaxAmount = *spec.Amount.Max
		}
	}

	now := opts.Now.In(loc)
	predicate.From = StartOfDay(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), loc)
	predicate.To = EndOfDay(time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, loc), loc)
	if spec.Date != nil {
		if spec.Date.From != nil {
			predicate.From = StartOfDay(*spec.Date.From, loc)
		}
		if spec.Date.To != nil {
			predicate.To = EndOfDay(*spec.Date.To, loc)
		}
	}
	if predicate.From.After(predicate.To) {
		return Predicate{}, fmt.Errorf("%w: date range starts after it ends", ErrInvalidInput)
	}

	return predicate, nil
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func EndOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
}

// MonthOf is the value stored in Entry.Month for a given date.
func MonthOf(date time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	return int(date.In(loc).Month())
}

func normalizeIDs(ids []string) []string {
	result := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		value := strings.TrimSpace(id)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
