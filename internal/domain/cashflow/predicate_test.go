package cashflow

import "strings"

// matchesEntry evaluates a predicate in memory for the fake repositories.
// It mirrors applyPredicate in repository/postgres/cashflow; keep both in step.
func matchesEntry(p Predicate, entry Entry) bool {
	if p.Empty() {
		return false
	}
	if entry.OwnerID != p.OwnerID || !containsString(p.EntityIDs, entry.EntityID) {
		return false
	}
	if p.NameContains != "" && !strings.Contains(strings.ToLower(entry.Name), strings.ToLower(p.NameContains)) {
		return false
	}
	if !allows(p.CategoryIDs, entry.CategoryID) ||
		!allows(p.PaymentTypes, entry.PaymentType) ||
		!allows(p.FlowDirections, entry.FlowDirection) ||
		!allows(p.Statuses, entry.PaymentStatus) {
		return false
	}
	if entry.Amount.LessThan(p.MinAmount) || entry.Amount.GreaterThan(p.MaxAmount) {
		return false
	}
	return !entry.Date.Before(p.From) && !entry.Date.After(p.To)
}

func allows[T ~string](m Membership[T], value T) bool {
	if !m.Restricted() {
		return true
	}
	for _, candidate := range m.Values() {
		if candidate == value {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, item := range values {
		if item == value {
			return true
		}
	}
	return false
}
