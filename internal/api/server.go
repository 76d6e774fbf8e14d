package api

import (
	"context"

	"github.com/vytor/learnloop/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	ContentService      services.ContentService
	SessionService      services.SessionService
	ReviewService       services.ReviewService
	ProficiencyService  services.ProficiencyService
	GamificationService services.GamificationService
	DB                  Pinger
}
