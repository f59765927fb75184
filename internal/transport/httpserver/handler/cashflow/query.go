package cashflow

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	cashflowdomain "finance-tracker-go/internal/domain/cashflow"
	"finance-tracker-go/internal/export"
	"finance-tracker-go/internal/transport/httpserver/handler/common"
)

// Query is listCashFlow. It takes a JSON body rather than query parameters
// so an omitted filter array and an empty one stay distinguishable.
func (h *Handlers) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := common.ValidateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	spec, err := req.Filters.toSpec(h.CashFlow.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	page, err := h.CashFlow.List(r.Context(), principal, cashflowdomain.ListInput{
		EntityIDs: req.EntityIDs,
		Filter:    spec,
		PageIndex: req.PageIndex,
		PageSize:  req.PageSize,
	})
	if err != nil {
		h.writeServiceError(w, "cashflow.query", err, "user_id", principal.UserID())
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(page))
}

func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := common.ValidateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	loc := h.CashFlow.Location()
	spec, err := req.Filters.toSpec(loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	page, err := h.CashFlow.Export(r.Context(), principal, req.EntityIDs, spec)
	if err != nil {
		h.writeServiceError(w, "cashflow.export", err, "user_id", principal.UserID())
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCashFlowXLSX(&buf, page.Rows, page.TotalProfit, loc); err != nil {
		h.log.InternalError("cashflow.export: render workbook failed", err, "user_id", principal.UserID())
		common.InternalError(w)
		return
	}

	filename := fmt.Sprintf("cash-flow-%s.xlsx", h.now().In(loc).Format("2006-01-02"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
