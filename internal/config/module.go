package config

import "go.uber.org/fx"

// Module loads the service configuration into the fx graph.
var Module = fx.Module("config", fx.Provide(Load))
