package enginebridge

import "github.com/pkg/errors"

var (
	// ErrBusy is the ai_busy sentinel: a best_move request arrived while
	// the bridge already had one outstanding.
	ErrBusy = errors.New("enginebridge: engine is already thinking")
	// ErrUnreachable covers process-start, pipe failures, and a transport
	// poisoned by a canceled exchange.
	ErrUnreachable = errors.New("enginebridge: engine process unreachable")
	// ErrDisposed is returned by any operation invoked after Dispose.
	ErrDisposed = errors.New("enginebridge: bridge has been disposed")
)
