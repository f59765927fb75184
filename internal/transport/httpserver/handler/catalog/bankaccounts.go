package catalog

import (
	"errors"
	"net/http"
	"time"

	bankaccountsdomain "finance-tracker-go/internal/domain/bankaccounts"
	"finance-tracker-go/internal/transport/httpserver/handler/common"
	"github.com/shopspring/decimal"
)

type bankAccountRequest struct {
	Name        string          `json:"name" validate:"required,max=80"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount"`
}

type bankAccountResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (h *Handlers) ListBankAccounts(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	pageIndex, err := common.ParseIntParam(query.Get("page_index"), 0)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid page_index")
		return
	}
	pageSize, err := common.ParseIntParam(query.Get("page_size"), 0)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid page_size")
		return
	}

	ownerID := principal.EffectiveOwner()
	items, total, err := h.BankAccounts.List(r.Context(), ownerID, pageIndex, pageSize)
	if err != nil {
		h.writeBankAccountError(w, "bank_accounts.list", err, "owner_id", ownerID)
		return
	}

	response := make([]bankAccountResponse, 0, len(items))
	for _, account := range items {
		response = append(response, toBankAccountResponse(account))
	}
	common.WriteJSON(w, http.StatusOK, listResponse{Items: response, Total: total, PageIndex: pageIndex})
}

func (h *Handlers) BankBalance(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	total, err := h.BankAccounts.TotalBalance(r.Context(), principal.EffectiveOwner())
	if err != nil {
		h.writeBankAccountError(w, "bank_accounts.balance", err, "owner_id", principal.EffectiveOwner())
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"total": total})
}

func (h *Handlers) GetBankAccount(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	accountID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "bank_account_not_found", "bank account not found")
		return
	}
	account, err := h.BankAccounts.Get(r.Context(), principal.EffectiveOwner(), accountID)
	if err != nil {
		h.writeBankAccountError(w, "bank_accounts.get", err, "account_id", accountID)
		return
	}
	common.WriteJSON(w, http.StatusOK, toBankAccountResponse(*account))
}

func (h *Handlers) CreateBankAccount(w http.ResponseWriter, r *http.Request) {
	var req bankAccountRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := common.ValidateRequest(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	account, err := h.BankAccounts.Create(r.Context(), principal.EffectiveOwner(), bankaccountsdomain.Input{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		h.writeBankAccountError(w, "bank_accounts.create", err, "owner_id", principal.EffectiveOwner())
		return
	}
	common.WriteJSON(w, http.StatusCreated, toBankAccountResponse(*account))
}

func (h *Handlers) UpdateBankAccount(w http.ResponseWriter, r *http.Request) {
	var req bankAccountRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := common.ValidateRequest(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	accountID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "bank_account_not_found", "bank account not found")
		return
	}
	account, err := h.BankAccounts.Update(r.Context(), principal.EffectiveOwner(), accountID, bankaccountsdomain.Input{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		h.writeBankAccountError(w, "bank_accounts.update", err, "account_id", accountID)
		return
	}
	common.WriteJSON(w, http.StatusOK, toBankAccountResponse(*account))
}

func (h *Handlers) DeleteBankAccount(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	accountID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "bank_account_not_found", "bank account not found")
		return
	}
	if err := h.BankAccounts.Delete(r.Context(), principal.EffectiveOwner(), accountID); err != nil {
		h.writeBankAccountError(w, "bank_accounts.delete", err, "account_id", accountID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeBankAccountError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, bankaccountsdomain.ErrInvalidInput):
		h.log.BusinessError(op+": invalid input", err, args...)
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, bankaccountsdomain.ErrBankAccountNotFound):
		h.log.BusinessError(op+": bank account not found", err, args...)
		common.WriteError(w, http.StatusNotFound, "bank_account_not_found", "bank account not found")
	default:
		h.log.InternalError(op+": failed", err, args...)
		common.InternalError(w)
	}
}

func toBankAccountResponse(account bankaccountsdomain.BankAccount) bankAccountResponse {
	return bankAccountResponse{
		ID:          account.ID,
		Name:        account.Name,
		Description: account.Description,
		Amount:      account.Amount,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}
