package auth

import (
	"go.uber.org/fx"

	"github.com/sunitsen/flame/internal/config"
)

// Module provides token verification via fx.
var Module = fx.Provide(newTokenManager)

type managerParams struct {
	fx.In

	Config *config.Config
}

func newTokenManager(p managerParams) *TokenManager {
	return NewTokenManager(p.Config.JWTSecret, 0)
}
