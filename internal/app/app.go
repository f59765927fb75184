package app

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"finance-tracker-go/internal/auth"
	"finance-tracker-go/internal/config"
	"finance-tracker-go/internal/db"
	analyticsdomain "finance-tracker-go/internal/domain/analytics"
	bankaccountsdomain "finance-tracker-go/internal/domain/bankaccounts"
	cashflowdomain "finance-tracker-go/internal/domain/cashflow"
	categoriesdomain "finance-tracker-go/internal/domain/categories"
	entitiesdomain "finance-tracker-go/internal/domain/entities"
	usersdomain "finance-tracker-go/internal/domain/users"
	"finance-tracker-go/internal/events"
	"finance-tracker-go/internal/repository/inmemory"
	analyticsrepo "finance-tracker-go/internal/repository/postgres/analytics"
	bankaccountsrepo "finance-tracker-go/internal/repository/postgres/bankaccounts"
	cashflowrepo "finance-tracker-go/internal/repository/postgres/cashflow"
	categoriesrepo "finance-tracker-go/internal/repository/postgres/categories"
	entitiesrepo "finance-tracker-go/internal/repository/postgres/entities"
	usersrepo "finance-tracker-go/internal/repository/postgres/users"
	"finance-tracker-go/internal/transport/httpserver"
	"finance-tracker-go/internal/transport/httpserver/handler"
	analyticshandler "finance-tracker-go/internal/transport/httpserver/handler/analytics"
	cashflowhandler "finance-tracker-go/internal/transport/httpserver/handler/cashflow"
	"finance-tracker-go/internal/transport/httpserver/handler/catalog"
	"finance-tracker-go/internal/transport/httpserver/handler/common"
	"finance-tracker-go/internal/transport/httpserver/handler/members"
	"finance-tracker-go/pkg/logger"
	"gorm.io/gorm"
)

const categoryNamesTTL = time.Minute

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	events     events.Publisher
	log        logger.Logger
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	if cfg.MigrateOnStart {
		log.Info("app: applying migrations")
		if err := db.Migrate(cfg.DB.GetDSN(), log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	tokens, err := newTokens(cfg, log)
	if err != nil {
		closeDB(dbConn)
		return nil, err
	}

	publisher := newPublisher(cfg, log)

	log.Info("app: initializing services")
	entitiesService := entitiesdomain.NewService(entitiesrepo.NewPostgres(dbConn))
	categoriesService := categoriesdomain.NewService(categoriesrepo.NewPostgres(dbConn), cfg.CashFlow.DefaultPageSize, cfg.CashFlow.MaxPageSize).
		WithNameCache(inmemory.NewCategoryNamesCache(), categoryNamesTTL)
	bankAccountsService := bankaccountsdomain.NewService(bankaccountsrepo.NewPostgres(dbConn), cfg.CashFlow.DefaultPageSize, cfg.CashFlow.MaxPageSize)
	usersService := usersdomain.NewService(usersrepo.NewPostgres(dbConn), entitiesService)
	cashFlowService := cashflowdomain.NewService(cashflowrepo.NewPostgres(dbConn), entitiesService, cashflowdomain.Config{
		Location:        cfg.CashFlow.Location,
		AmountCap:       cfg.CashFlow.AmountCap,
		DefaultPageSize: cfg.CashFlow.DefaultPageSize,
		MaxPageSize:     cfg.CashFlow.MaxPageSize,
		ExportMaxRows:   cfg.CashFlow.ExportMaxRows,
	})
	analyticsService := analyticsdomain.NewService(analyticsrepo.NewPostgres(dbConn), categoriesService, entitiesService, analyticsdomain.Config{
		Location: cfg.CashFlow.Location,
		Locale:   cfg.CashFlow.Locale,
	})

	log.Info("app: initializing router")
	handlers := handler.New(
		common.New(usersService, tokens, cfg.Env != "development", log),
		cashflowhandler.New(cashFlowService, publisher, log),
		analyticshandler.New(analyticsService, log),
		catalog.New(categoriesService, entitiesService, bankAccountsService, log),
		members.New(usersService, log),
	)
	router := httpserver.NewRouter(cfg, handlers, tokens, usersService, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		events:     publisher,
		log:        log,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error
	if a.events != nil {
		if err := a.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close events: %w", err))
		}
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// newTokens falls back to a per-process secret in development, which signs
// every session out on restart.
func newTokens(cfg config.Config, log logger.Logger) (*auth.Tokens, error) {
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		log.Warn("auth: JWT_SECRET_KEY not set, using an ephemeral secret")
	}
	return auth.NewTokens(secret, cfg.Auth.TokenTTL)
}

func newPublisher(cfg config.Config, log logger.Logger) events.Publisher {
	if cfg.AMQP.URL == "" {
		log.Info("events: AMQP_URL not set, cash flow events disabled")
		return events.Noop{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
	if err != nil {
		log.InternalError("events: broker unavailable, cash flow events disabled", err, "exchange", cfg.AMQP.Exchange)
		return events.Noop{}
	}
	log.Info("events: publishing to exchange", "exchange", cfg.AMQP.Exchange)
	return publisher
}

func closeDB(conn *gorm.DB) {
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
