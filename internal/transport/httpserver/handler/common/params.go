package common

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func parseCSV(value string) []string {
	parts := strings.Split(value, ",")
	seen := make(map[string]struct{}, len(parts))
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

// ParseIDList joins repeated and comma separated values of one query key.
func ParseIDList(values []string) []string {
	return parseCSV(strings.Join(values, ","))
}

// ParseUUIDList is ParseIDList for keys whose values must all be UUIDs.
// Ids come back in canonical form.
func ParseUUIDList(values []string) ([]string, error) {
	ids := ParseIDList(values)
	for i, id := range ids {
		canonical, ok := canonicalUUID(id)
		if !ok {
			return nil, fmt.Errorf("invalid id %q", id)
		}
		ids[i] = canonical
	}
	return ids, nil
}

// PathID returns the {id} URL parameter in canonical form. ok is false when
// it is not a UUID; no stored row can match such an id.
func PathID(r *http.Request) (string, bool) {
	return canonicalUUID(chi.URLParam(r, "id"))
}

func canonicalUUID(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if len(value) != 36 {
		return "", false
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func ParseIntParam(value string, fallback int) (int, error) {
	return parseIntParam(value, fallback)
}
