package bootstrap

import (
	"context"

	"procedures-search-backend/search/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// unavailableIndex answers every query with the error that prevented the real
// index from being built.
type unavailableIndex struct {
	cause error
}

func (u unavailableIndex) Query(context.Context, repositories.IndexQuery) ([]repositories.Hit, error) {
	return nil, &repositories.UnavailableError{Err: u.cause}
}

// NewDegradedApp serves profile without an index. Routes that never touch the
// index (health) behave normally; search routes answer 503 with cause as detail.
func NewDegradedApp(profile Profile, cause error, logger *zap.Logger) (*fiber.App, error) {
	return NewApp(profile, Dependencies{Index: unavailableIndex{cause: cause}, Logger: logger})
}
