package cashflow

import (
	"context"
	"net/http"

	cashflowdomain "finance-tracker-go/internal/domain/cashflow"
	"finance-tracker-go/internal/domain/scope"
	"finance-tracker-go/internal/events"
	"finance-tracker-go/internal/transport/httpserver/handler/common"
)

func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	entryID, ok := common.PathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "cashflow_not_found", "cash flow entry not found")
		return
	}

	row, err := h.CashFlow.Get(r.Context(), principal, entryID)
	if err != nil {
		h.writeServiceError(w, "cashflow.get", err, "user_id", principal.UserID(), "entry_id", entryID)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(row.Entry, row.CategoryName))
}

func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
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

	input, err := req.toInput(h.CashFlow.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	entry, err := h.CashFlow.Create(r.Context(), principal, input)
	if err != nil {
		h.writeServiceError(w, "cashflow.create", err, "user_id", principal.UserID())
		return
	}

	h.publish(r.Context(), events.CashFlowCreated, principal, *entry)
	writeJSON(w, http.StatusCreated, toEntryResponse(*entry, ""))
}

func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
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

	entryID, ok := common.PathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "cashflow_not_found", "cash flow entry not found")
		return
	}

	input, err := req.toInput(h.CashFlow.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	entry, err := h.CashFlow.Update(r.Context(), principal, entryID, input)
	if err != nil {
		h.writeServiceError(w, "cashflow.update", err, "user_id", principal.UserID(), "entry_id", entryID)
		return
	}

	h.publish(r.Context(), events.CashFlowUpdated, principal, *entry)
	writeJSON(w, http.StatusOK, toEntryResponse(*entry, ""))
}

func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	entryID, ok := common.PathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "cashflow_not_found", "cash flow entry not found")
		return
	}

	entry, err := h.CashFlow.Delete(r.Context(), principal, entryID)
	if err != nil {
		h.writeServiceError(w, "cashflow.delete", err, "user_id", principal.UserID(), "entry_id", entryID)
		return
	}

	h.publish(r.Context(), events.CashFlowDeleted, principal, *entry)
	w.WriteHeader(http.StatusNoContent)
}

// publish reports a committed change. A broker failure is logged and the
// request still succeeds.
func (h *Handlers) publish(ctx context.Context, eventType events.Type, principal scope.Principal, entry cashflowdomain.Entry) {
	event := events.Event{
		Type:       eventType,
		OwnerID:    principal.EffectiveOwner(),
		ActorID:    principal.UserID(),
		EntryID:    entry.ID,
		EntityID:   entry.EntityID,
		Month:      entry.Month,
		OccurredAt: h.now().UTC(),
	}
	if err := h.Events.Publish(context.WithoutCancel(ctx), event); err != nil {
		h.log.InternalError("cashflow: publish event failed", err, "type", string(eventType), "entry_id", entry.ID)
	}
}
