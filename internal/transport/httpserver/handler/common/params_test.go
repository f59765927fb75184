package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestParseUUIDList(t *testing.T) {
	ids, err := ParseUUIDList([]string{"7F1D6A8E-3C1B-4A52-9F0E-2B6C1D4E5A01, c2a4b6d8-1e3f-4a5b-8c7d-9e0f1a2b3c4d", "c2a4b6d8-1e3f-4a5b-8c7d-9e0f1a2b3c4d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "7f1d6a8e-3c1b-4a52-9f0e-2b6c1d4e5a01" {
		t.Fatalf("expected two canonical ids, got %v", ids)
	}

	for _, values := range [][]string{{"abc"}, {"7f1d6a8e-3c1b-4a52-9f0e-2b6c1d4e5a01,shop"}, {"{7f1d6a8e-3c1b-4a52-9f0e-2b6c1d4e5a01}"}} {
		if _, err := ParseUUIDList(values); err == nil {
			t.Fatalf("expected error for %v", values)
		}
	}
}

func TestPathID(t *testing.T) {
	withID := func(id string) *http.Request {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", id)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	}

	if id, ok := PathID(withID("C2A4B6D8-1E3F-4A5B-8C7D-9E0F1A2B3C4D")); !ok || id != "c2a4b6d8-1e3f-4a5b-8c7d-9e0f1a2b3c4d" {
		t.Fatalf("expected canonical id, got %q %v", id, ok)
	}
	for _, raw := range []string{"", "abc", "urn:uuid:c2a4b6d8-1e3f-4a5b-8c7d-9e0f1a2b3c4d"} {
		if _, ok := PathID(withID(raw)); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
