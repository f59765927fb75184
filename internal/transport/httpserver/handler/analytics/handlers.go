package analytics

import (
	analyticsdomain "finance-tracker-go/internal/domain/analytics"
	"finance-tracker-go/pkg/logger"
)

type Handlers struct {
	Analytics *analyticsdomain.Service
	log       logger.Logger
}

func New(analytics *analyticsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Analytics: analytics,
		log:       log,
	}
}
