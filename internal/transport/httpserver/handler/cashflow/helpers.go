package cashflow

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cashflowdomain "finance-tracker-go/internal/domain/cashflow"
	"finance-tracker-go/internal/transport/httpserver/handler/common"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	common.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	common.WriteJSON(w, status, payload)
}

// parseDate accepts a calendar date or an RFC 3339 timestamp and returns
// midnight in loc. A timestamp contributes the calendar date written in it,
// not the date its instant falls on in loc.
func parseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if parsed, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc), nil
}

func parseDatePtr(value *string, loc *time.Location) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := parseDate(*value, loc)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// writeServiceError maps cash flow errors to responses. op prefixes log lines.
func (h *Handlers) writeServiceError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, cashflowdomain.ErrInvalidInput):
		h.log.BusinessError(op+": invalid input", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, cashflowdomain.ErrEntryNotFound):
		h.log.BusinessError(op+": entry not found", err, args...)
		writeError(w, http.StatusNotFound, "cashflow_not_found", "cash flow entry not found")
	case errors.Is(err, cashflowdomain.ErrCategoryNotFound):
		h.log.BusinessError(op+": category not found", err, args...)
		writeError(w, http.StatusNotFound, "category_not_found", "category not found")
	case errors.Is(err, cashflowdomain.ErrExportTooLarge):
		h.log.BusinessError(op+": export too large", err, args...)
		writeError(w, http.StatusBadRequest, "export_too_large", err.Error())
	case errors.Is(err, cashflowdomain.ErrEntityNotAllowed):
		h.log.BusinessError(op+": entity not allowed", err, args...)
		writeError(w, http.StatusForbidden, "forbidden", "entity not allowed")
	default:
		h.log.InternalError(op+": failed", err, args...)
		common.InternalError(w)
	}
}
