package controller

import "github.com/pkg/errors"

// Input-kind failures: rejected before any rule or engine is consulted.
var (
	ErrInvalidCoordinate = errors.New("controller: coordinate outside the board")
	ErrWrongTurn         = errors.New("controller: origin piece does not belong to the side to move")
	ErrGameOver          = errors.New("controller: game has already reached a terminal status")
)

// ErrNoSuchHint is returned by the AI driver's Hint flow when the engine's
// reply cannot be decoded into a storable (from,to) hint.
var ErrNoSuchHint = errors.New("controller: no hint available")

// Undo/reset-kind failures.
var (
	ErrNothingToUndo = errors.New("controller: history has only the initial position")
)

// Engine-kind failures.
var (
	ErrEngineUnavailable = errors.New("controller: no engine configured")
)

// EngineRejection wraps the reason an engine gave for denying is_move_legal.
type EngineRejection struct {
	Reason string
}

func (e *EngineRejection) Error() string {
	if e.Reason == "" {
		return "controller: engine rejected the move"
	}
	return "controller: engine rejected the move: " + e.Reason
}

func newEngineRejection(reason string) error {
	return &EngineRejection{Reason: reason}
}
