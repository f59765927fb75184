package catalog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finance-tracker-go/internal/domain/scope"
	"finance-tracker-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

func newRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := scope.WithPrincipal(r.Context(), scope.NewOwner("owner-1"))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	r.Get("/categories/{id}", h.GetCategory)
	r.Put("/categories/{id}", h.UpdateCategory)
	r.Delete("/categories/{id}", h.DeleteCategory)
	r.Get("/entities/{id}", h.GetEntity)
	r.Put("/entities/{id}", h.UpdateEntity)
	r.Delete("/entities/{id}", h.DeleteEntity)
	r.Get("/bank-accounts/{id}", h.GetBankAccount)
	r.Put("/bank-accounts/{id}", h.UpdateBankAccount)
	r.Delete("/bank-accounts/{id}", h.DeleteBankAccount)
	return r
}

// Services stay nil: a malformed id never reaches storage.
func TestMalformedPathIDIsNotFound(t *testing.T) {
	router := newRouter(New(nil, nil, nil, logger.Discard()))

	cases := []struct {
		path string
		code string
	}{
		{"/categories/abc", "category_not_found"},
		{"/entities/abc", "entity_not_found"},
		{"/bank-accounts/abc", "bank_account_not_found"},
		{"/bank-accounts/7f1d6a8e3c1b4a529f0e2b6c1d4e5a01", "bank_account_not_found"},
	}
	for _, tc := range cases {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			req := httptest.NewRequest(method, tc.path, strings.NewReader(`{"name":"Rent","description":""}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), tc.code) {
				t.Fatalf("%s %s: expected 404 %s, got %d: %s", method, tc.path, tc.code, rec.Code, rec.Body.String())
			}
		}
	}
}
