package enginetest

import "xiangqi/internal/controller"

// Compile-time assertion that the stub satisfies the interface the
// controller depends on, so AI-driver, session and HTTP tests can build a
// controller on a *Engine directly instead of a live subprocess bridge.
var _ controller.Engine = (*Engine)(nil)
