package router

import "go.uber.org/fx"

// Module provides the configured gin engine to the fx graph.
var Module = fx.Module("router", fx.Provide(Setup))
