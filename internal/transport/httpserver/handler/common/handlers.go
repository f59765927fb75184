package common

import (
	"finance-tracker-go/internal/auth"
	usersdomain "finance-tracker-go/internal/domain/users"
	"finance-tracker-go/pkg/logger"
)

type Handlers struct {
	Users         *usersdomain.Service
	Tokens        *auth.Tokens
	secureCookies bool
	log           logger.Logger
}

func New(users *usersdomain.Service, tokens *auth.Tokens, secureCookies bool, log logger.Logger) *Handlers {
	return &Handlers{
		Users:         users,
		Tokens:        tokens,
		secureCookies: secureCookies,
		log:           log,
	}
}
