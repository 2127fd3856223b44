// Package enginebridge drives an external UCI-like search engine as an
// opaque subprocess: a text line protocol carries requests and replies one
// exchange at a time, exactly one bestmove request may be outstanding, and every
// operation that talks to the process is a suspension point the caller
// awaits through a context.
package enginebridge

// State is the bridge's own lifecycle, independent of the engine process's
// internal search state.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateThinking
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateThinking:
		return "thinking"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Config mirrors the configure() parameters of the engine contract.
type Config struct {
	Threads    int
	HashMB     int
	SkillLevel int
	Depth      int
	MoveTimeMs int
}

// DefaultConfig applies the threading rule from the spec: max(1, ncpu/2)
// search threads and 128 MB hash at initialization.
func DefaultConfig(ncpu int) Config {
	threads := ncpu / 2
	if threads < 1 {
		threads = 1
	}
	return Config{
		Threads:    threads,
		HashMB:     128,
		SkillLevel: 10,
		Depth:      12,
		MoveTimeMs: 1000,
	}
}
