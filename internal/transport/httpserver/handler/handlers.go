package handler

import (
	analyticshandler "finance-tracker-go/internal/transport/httpserver/handler/analytics"
	cashflowhandler "finance-tracker-go/internal/transport/httpserver/handler/cashflow"
	"finance-tracker-go/internal/transport/httpserver/handler/catalog"
	"finance-tracker-go/internal/transport/httpserver/handler/common"
	"finance-tracker-go/internal/transport/httpserver/handler/members"
)

type Handlers struct {
	Common    *common.Handlers
	CashFlow  *cashflowhandler.Handlers
	Analytics *analyticshandler.Handlers
	Catalog   *catalog.Handlers
	Members   *members.Handlers
}

func New(commonHandlers *common.Handlers, cashFlow *cashflowhandler.Handlers, analytics *analyticshandler.Handlers, catalogHandlers *catalog.Handlers, membersHandlers *members.Handlers) *Handlers {
	return &Handlers{
		Common:    commonHandlers,
		CashFlow:  cashFlow,
		Analytics: analytics,
		Catalog:   catalogHandlers,
		Members:   membersHandlers,
	}
}
