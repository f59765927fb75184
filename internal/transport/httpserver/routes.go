package httpserver

import (
	"net/http"
	"time"

	"finance-tracker-go/internal/config"
	"finance-tracker-go/internal/transport/httpserver/handler"
	authmw "finance-tracker-go/internal/transport/httpserver/middleware"
	"finance-tracker-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, tokens authmw.TokenParser, users authmw.UserLoader, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		r.Post("/auth/register", handlers.Common.Register)
		r.Post("/auth/login", handlers.Common.Login)
		r.Post("/auth/logout", handlers.Common.Logout)

		auth := authmw.NewJWTAuth(tokens, users, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)

			r.Post("/cashflow/query", handlers.CashFlow.Query)
			r.Post("/cashflow/export", handlers.CashFlow.Export)
			r.Post("/cashflow", handlers.CashFlow.Create)
			r.Get("/cashflow/{id}", handlers.CashFlow.Get)
			r.Put("/cashflow/{id}", handlers.CashFlow.Update)
			r.Delete("/cashflow/{id}", handlers.CashFlow.Delete)

			r.Get("/analytics/monthly", handlers.Analytics.Monthly)
			r.Get("/analytics/by-category", handlers.Analytics.ByCategory)
			r.Get("/analytics/dashboard", handlers.Analytics.Dashboard)

			r.Get("/categories", handlers.Catalog.ListCategories)
			r.Post("/categories", handlers.Catalog.CreateCategory)
			r.Get("/categories/{id}", handlers.Catalog.GetCategory)
			r.Patch("/categories/{id}", handlers.Catalog.UpdateCategory)
			r.Delete("/categories/{id}", handlers.Catalog.DeleteCategory)

			r.Get("/entities/mine", handlers.Catalog.MyEntities)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireOwner)

				r.Get("/entities", handlers.Catalog.ListEntities)
				r.Post("/entities", handlers.Catalog.CreateEntity)
				r.Get("/entities/{id}", handlers.Catalog.GetEntity)
				r.Put("/entities/{id}", handlers.Catalog.UpdateEntity)
				r.Delete("/entities/{id}", handlers.Catalog.DeleteEntity)

				r.Get("/users", handlers.Members.ListMembers)
				r.Post("/users", handlers.Members.CreateMember)
				r.Get("/users/{id}", handlers.Members.GetMember)
				r.Delete("/users/{id}", handlers.Members.DeleteMember)
				r.Put("/users/{id}/permissions", handlers.Members.SetPermissions)

				r.Get("/bank-accounts", handlers.Catalog.ListBankAccounts)
				r.Get("/bank-accounts/balance", handlers.Catalog.BankBalance)
				r.Post("/bank-accounts", handlers.Catalog.CreateBankAccount)
				r.Get("/bank-accounts/{id}", handlers.Catalog.GetBankAccount)
				r.Put("/bank-accounts/{id}", handlers.Catalog.UpdateBankAccount)
				r.Delete("/bank-accounts/{id}", handlers.Catalog.DeleteBankAccount)
			})
		})
	})

	return r
}
