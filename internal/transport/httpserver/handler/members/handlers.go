package members

import (
	usersdomain "finance-tracker-go/internal/domain/users"
	"finance-tracker-go/pkg/logger"
)

type Handlers struct {
	Users *usersdomain.Service
	log   logger.Logger
}

func New(users *usersdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Users: users,
		log:   log,
	}
}
