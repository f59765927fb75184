package analytics

import (
	"errors"
	"net/http"
	"strings"

	analyticsdomain "finance-tracker-go/internal/domain/analytics"
	"finance-tracker-go/internal/domain/cashflow"
	"finance-tracker-go/internal/transport/httpserver/handler/common"
	"github.com/shopspring/decimal"
)

// Month carries the localized label; MonthNumber is 1..12.
type monthlyPointResponse struct {
	Month       string          `json:"month"`
	MonthNumber int             `json:"monthNumber"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
}

type categoryPointResponse struct {
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
}

type dashboardResponse struct {
	Year              int                     `json:"year"`
	Monthly           []monthlyPointResponse  `json:"monthly"`
	IncomeByCategory  []categoryPointResponse `json:"incomeByCategory"`
	ExpenseByCategory []categoryPointResponse `json:"expenseByCategory"`
	YearIncome        decimal.Decimal         `json:"yearIncome"`
	YearExpense       decimal.Decimal         `json:"yearExpense"`
	YearNetProfit     decimal.Decimal         `json:"yearNetProfit"`
	CurrentMonth      int                     `json:"currentMonth"`
	MonthNetProfit    decimal.Decimal         `json:"monthNetProfit"`
}

func (h *Handlers) Monthly(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}
	entityIDs, ok := h.entityIDs(w, r.URL.Query()["entity_ids"])
	if !ok {
		return
	}

	points, err := h.Analytics.MonthlySeries(r.Context(), principal, entityIDs)
	if err != nil {
		h.log.InternalError("analytics.monthly: build series failed", err, "user_id", principal.UserID())
		common.InternalError(w)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": toMonthlyResponse(points),
	})
}

func (h *Handlers) ByCategory(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	entityIDs, ok := h.entityIDs(w, query["entity_ids"])
	if !ok {
		return
	}
	direction := cashflow.FlowDirection(strings.ToUpper(strings.TrimSpace(query.Get("direction"))))

	points, err := h.Analytics.CategorySeries(r.Context(), principal, entityIDs, direction)
	if err != nil {
		if errors.Is(err, analyticsdomain.ErrInvalidInput) {
			h.log.BusinessError("analytics.by_category: invalid direction", err, "user_id", principal.UserID())
			common.WriteError(w, http.StatusBadRequest, "invalid_request", "direction must be INCOME or EXPENSE")
			return
		}
		h.log.InternalError("analytics.by_category: build series failed", err, "user_id", principal.UserID())
		common.InternalError(w)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"direction": direction,
		"items":     toCategoryResponse(points),
	})
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}
	entityIDs, ok := h.entityIDs(w, r.URL.Query()["entity_ids"])
	if !ok {
		return
	}

	dashboard, err := h.Analytics.Dashboard(r.Context(), principal, entityIDs)
	if err != nil {
		h.log.InternalError("analytics.dashboard: build dashboard failed", err, "user_id", principal.UserID())
		common.InternalError(w)
		return
	}

	common.WriteJSON(w, http.StatusOK, dashboardResponse{
		Year:              dashboard.Year,
		Monthly:           toMonthlyResponse(dashboard.Monthly),
		IncomeByCategory:  toCategoryResponse(dashboard.IncomeByCat),
		ExpenseByCategory: toCategoryResponse(dashboard.ExpenseByCat),
		YearIncome:        dashboard.YearIncome,
		YearExpense:       dashboard.YearExpense,
		YearNetProfit:     dashboard.YearNetProfit,
		CurrentMonth:      dashboard.CurrentMonth,
		MonthNetProfit:    dashboard.MonthNetProfit,
	})
}

func (h *Handlers) entityIDs(w http.ResponseWriter, values []string) ([]string, bool) {
	ids, err := common.ParseUUIDList(values)
	if err != nil {
		h.log.BusinessError("analytics: invalid entity_ids", err)
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "entity_ids must be UUIDs")
		return nil, false
	}
	return ids, true
}

func toMonthlyResponse(points []analyticsdomain.MonthlyPoint) []monthlyPointResponse {
	response := make([]monthlyPointResponse, 0, len(points))
	for _, point := range points {
		response = append(response, monthlyPointResponse{
			Month:       point.Label,
			MonthNumber: point.Month,
			Income:      point.Income,
			Expense:     point.Expense,
		})
	}
	return response
}

func toCategoryResponse(points []analyticsdomain.CategoryPoint) []categoryPointResponse {
	response := make([]categoryPointResponse, 0, len(points))
	for _, point := range points {
		response = append(response, categoryPointResponse{
			CategoryID: point.CategoryID,
			Name:       point.Name,
			Value:      point.Value,
		})
	}
	return response
}
