//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
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
	"finance-tracker-go/internal/export"
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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.Discard()
	cfg := config.Config{
		Env:         "test",
		CORSOrigins: []string{"http://localhost:3000"},
		DB:          config.DBConfig{DSN: dsn},
	}

	if err := db.Migrate(dsn, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	tokens, err := auth.NewTokens("e2e-secret", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}

	entitiesService := entitiesdomain.NewService(entitiesrepo.NewPostgres(dbConn))
	categoriesService := categoriesdomain.NewService(categoriesrepo.NewPostgres(dbConn), 10, 100)
	bankAccountsService := bankaccountsdomain.NewService(bankaccountsrepo.NewPostgres(dbConn), 10, 100)
	usersService := usersdomain.NewService(usersrepo.NewPostgres(dbConn), entitiesService)
	cashFlowService := cashflowdomain.NewService(cashflowrepo.NewPostgres(dbConn), entitiesService, cashflowdomain.Config{
		Location:  time.UTC,
		AmountCap: decimal.NewFromInt(200000),
	})
	analyticsService := analyticsdomain.NewService(analyticsrepo.NewPostgres(dbConn), categoriesService, entitiesService, analyticsdomain.Config{
		Location: time.UTC,
		Locale:   "en",
	})

	handlers := handler.New(
		common.New(usersService, tokens, false, log),
		cashflowhandler.New(cashFlowService, events.Noop{}, log),
		analyticshandler.New(analyticsService, log),
		catalog.New(categoriesService, entitiesService, bankAccountsService, log),
		members.New(usersService, log),
	)
	router := httpserver.NewRouter(cfg, handlers, tokens, usersService, log)

	return &testEnv{server: httptest.NewServer(router), db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE cash_flows, bank_accounts, entity_users, categories, entities, users CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

func decode(t *testing.T, body []byte, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, dst); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

type sessionResponse struct {
	User struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

type idResponse struct {
	ID string `json:"id"`
}

type pageResponse struct {
	Rows []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		CategoryName string `json:"categoryName"`
		Month        int    `json:"month"`
	} `json:"rows"`
	Total       int64           `json:"total"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
}

type errorEnvelope struct {
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func register(t *testing.T, client *http.Client, baseURL, email string) sessionResponse {
	t.Helper()
	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var session sessionResponse
	decode(t, body, &session)
	return session
}

func create(t *testing.T, client *http.Client, url, token string, payload interface{}) string {
	t.Helper()
	resp, body := requestJSON(t, client, http.MethodPost, url, token, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create %s: expected 201, got %d: %s", url, resp.StatusCode, string(body))
	}
	var created idResponse
	decode(t, body, &created)
	return created.ID
}

func TestE2EHealthAndAuth(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, _ := requestJSON(t, client, http.MethodGet, env.server.URL+"/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.StatusCode)
	}

	resp, _ = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("me without token: expected 401, got %d", resp.StatusCode)
	}

	session := register(t, client, env.server.URL, "owner@example.com")
	if session.User.Role != "owner" || session.Token == "" {
		t.Fatalf("unexpected session %+v", session)
	}

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/auth/register", "", map[string]string{
		"email":    "owner@example.com",
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/auth/login", "", map[string]string{
		"email":    "owner@example.com",
		"password": "wrong-password",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/me", session.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
}

func TestE2ECashFlowScopeAndAggregates(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	base := env.server.URL + "/api"
	owner := register(t, client, env.server.URL, "owner@example.com")

	shop := create(t, client, base+"/entities", owner.Token, map[string]string{"name": "Shop"})
	warehouse := create(t, client, base+"/entities", owner.Token, map[string]string{"name": "Warehouse"})
	sales := create(t, client, base+"/categories", owner.Token, map[string]string{"name": "Sales"})
	rent := create(t, client, base+"/categories", owner.Token, map[string]string{"name": "Rent"})

	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	entries := []map[string]interface{}{
		{"name": "Sale 1", "paymentType": "TRANSFER", "flowDirection": "INCOME", "paymentStatus": "PAYED", "amount": "500", "date": today, "categoryId": sales, "entityId": shop},
		{"name": "Sale 2", "paymentType": "TICKET", "flowDirection": "INCOME", "paymentStatus": "NOT_PAYED", "amount": "300", "date": today, "categoryId": sales, "entityId": shop},
		{"name": "Rent", "paymentType": "TRANSFER", "flowDirection": "EXPENSE", "paymentStatus": "PAYED", "amount": "200", "date": today, "categoryId": rent, "entityId": shop},
		{"name": "Stock", "paymentType": "TRANSFER", "flowDirection": "EXPENSE", "paymentStatus": "PAYED", "amount": "50", "date": today, "categoryId": rent, "entityId": warehouse},
	}
	for _, entry := range entries {
		create(t, client, base+"/cashflow", owner.Token, entry)
	}

	resp, body := requestJSON(t, client, http.MethodPost, base+"/cashflow/query", owner.Token, map[string]interface{}{
		"entityIds": []string{shop},
		"pageIndex": 0,
		"pageSize":  2,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("query: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var page pageResponse
	decode(t, body, &page)
	if page.Total != 3 || len(page.Rows) != 2 {
		t.Fatalf("expected 3 total and 2 rows, got %d and %d", page.Total, len(page.Rows))
	}
	if !page.TotalProfit.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected totalProfit 600, got %s", page.TotalProfit)
	}
	if page.Rows[0].Month != int(now.Month()) || page.Rows[0].CategoryName == "" {
		t.Fatalf("expected month and category name on rows, got %+v", page.Rows[0])
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/cashflow/query", owner.Token, map[string]interface{}{
		"entityIds": []string{shop},
		"pageIndex": 1,
		"pageSize":  2,
	})
	decode(t, body, &page)
	if resp.StatusCode != http.StatusOK || len(page.Rows) != 1 || !page.TotalProfit.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("second page: expected 1 row and the same profit, got %d rows profit %s", len(page.Rows), page.TotalProfit)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/cashflow/query", owner.Token, map[string]interface{}{
		"entityIds": []string{shop, warehouse},
		"filters":   map[string]interface{}{"status": []string{}},
	})
	decode(t, body, &page)
	if resp.StatusCode != http.StatusOK || page.Total != 0 {
		t.Fatalf("explicit empty status: expected no rows, got %d", page.Total)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/cashflow/query", owner.Token, map[string]interface{}{
		"entityIds": []string{shop, warehouse},
		"filters":   map[string]interface{}{"amount": map[string]string{"min": "400", "max": "100"}},
	})
	decode(t, body, &page)
	if resp.StatusCode != http.StatusOK || page.Total != 0 {
		t.Fatalf("min above max: expected empty result, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/analytics/monthly?entity_ids="+shop, owner.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("monthly: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var monthly struct {
		Items []struct {
			Month       string          `json:"month"`
			MonthNumber int             `json:"monthNumber"`
			Income      decimal.Decimal `json:"income"`
			Expense     decimal.Decimal `json:"expense"`
		} `json:"items"`
	}
	decode(t, body, &monthly)
	if len(monthly.Items) != 12 {
		t.Fatalf("expected 12 monthly points, got %d", len(monthly.Items))
	}
	current := monthly.Items[now.Month()-1]
	if current.MonthNumber != int(now.Month()) || current.Month == "" {
		t.Fatalf("expected labelled point for month %d, got %+v", now.Month(), current)
	}
	if !current.Income.Equal(decimal.NewFromInt(800)) || !current.Expense.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("unexpected current month point %+v", current)
	}

	resp, body = requestJSON(t, client, http.MethodDelete, base+"/categories/"+rent, owner.Token, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("delete used category: expected 409, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/cashflow/export", owner.Token, map[string]interface{}{
		"entityIds": []string{shop},
	})
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != export.ContentType || len(body) == 0 {
		t.Fatalf("export: expected workbook, got %d %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}

func TestE2EMemberSeesOnlyGrantedEntities(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	base := env.server.URL + "/api"
	owner := register(t, client, env.server.URL, "owner@example.com")

	shop := create(t, client, base+"/entities", owner.Token, map[string]string{"name": "Shop"})
	warehouse := create(t, client, base+"/entities", owner.Token, map[string]string{"name": "Warehouse"})
	sales := create(t, client, base+"/categories", owner.Token, map[string]string{"name": "Sales"})
	today := time.Now().UTC().Format("2006-01-02")
	for _, entityID := range []string{shop, warehouse} {
		create(t, client, base+"/cashflow", owner.Token, map[string]interface{}{
			"name": "Sale", "paymentType": "TRANSFER", "flowDirection": "INCOME", "paymentStatus": "PAYED",
			"amount": "100", "date": today, "categoryId": sales, "entityId": entityID,
		})
	}

	memberID := create(t, client, base+"/users", owner.Token, map[string]string{
		"email":    "member@example.com",
		"password": "secret123",
	})
	resp, body := requestJSON(t, client, http.MethodPut, fmt.Sprintf("%s/users/%s/permissions", base, memberID), owner.Token, map[string]interface{}{
		"entityIds": []string{shop},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("permissions: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/auth/login", "", map[string]string{
		"email":    "member@example.com",
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("member login: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var member sessionResponse
	decode(t, body, &member)
	if member.User.Role != "member" {
		t.Fatalf("expected member role, got %+v", member.User)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/cashflow/query", member.Token, map[string]interface{}{
		"entityIds": []string{shop, warehouse},
	})
	var page pageResponse
	decode(t, body, &page)
	if resp.StatusCode != http.StatusOK || page.Total != 1 {
		t.Fatalf("member query: expected only the granted entity, got %d rows: %s", page.Total, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/entities", member.Token, nil)
	var envelope errorEnvelope
	decode(t, body, &envelope)
	if resp.StatusCode != http.StatusForbidden || envelope.Error.Code != "forbidden" {
		t.Fatalf("member admin page: expected 403 forbidden, got %d %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/entities/mine", member.Token, nil)
	var mine struct {
		Items []idResponse `json:"items"`
	}
	decode(t, body, &mine)
	if resp.StatusCode != http.StatusOK || len(mine.Items) != 1 || mine.Items[0].ID != shop {
		t.Fatalf("member picker: expected only shop, got %s", string(body))
	}
}
