package logger

import "go.uber.org/fx"

// Module provides the process logger to the fx graph.
var Module = fx.Module("logger", fx.Provide(New))
