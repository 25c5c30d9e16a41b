package test

import "go.uber.org/fx"

// LifecycleRecorder collects fx hooks so tests can run OnStart and OnStop
// by hand, without an fx app.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores the hook for manual invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called when the component under test requests
// application shutdown.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown records the invocation without blocking the caller.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
