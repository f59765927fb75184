package catalog

import (
	bankaccountsdomain "finance-tracker-go/internal/domain/bankaccounts"
	categoriesdomain "finance-tracker-go/internal/domain/categories"
	entitiesdomain "finance-tracker-go/internal/domain/entities"
	"finance-tracker-go/pkg/logger"
)

// Handlers serves the owner partition reference data: categories, entities
// and bank accounts.
type Handlers struct {
	Categories   *categoriesdomain.Service
	Entities     *entitiesdomain.Service
	BankAccounts *bankaccountsdomain.Service
	log          logger.Logger
}

func New(categories *categoriesdomain.Service, entities *entitiesdomain.Service, bankAccounts *bankaccountsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Categories:   categories,
		Entities:     entities,
		BankAccounts: bankAccounts,
		log:          log,
	}
}

type listResponse struct {
	Items     interface{} `json:"items"`
	Total     int64       `json:"total"`
	PageIndex int         `json:"pageIndex"`
}

type namedRequest struct {
	Name        string `json:"name" validate:"required,max=80"`
	Description string `json:"description" validate:"max=500"`
}
