package cashflow

import (
	"time"

	cashflowdomain "finance-tracker-go/internal/domain/cashflow"
	"finance-tracker-go/internal/events"
	"finance-tracker-go/pkg/logger"
)

type Handlers struct {
	CashFlow *cashflowdomain.Service
	Events   events.Publisher
	log      logger.Logger
	now      func() time.Time
}

func New(cashFlow *cashflowdomain.Service, publisher events.Publisher, log logger.Logger) *Handlers {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Handlers{
		CashFlow: cashFlow,
		Events:   publisher,
		log:      log,
		now:      time.Now,
	}
}
