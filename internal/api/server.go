package api

import (
	"context"

	"github.com/vytor/reviewflash/internal/services"
)

// TokenParser resolves a bearer token to a student id.
type TokenParser interface {
	Parse(token string) (string, error)
}

// Pinger reports database reachability for the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	ReviewService services.ReviewService
	ModuleService services.ModuleService
	Tokens        TokenParser
	DB            Pinger
	CORSOrigins   []string
}
