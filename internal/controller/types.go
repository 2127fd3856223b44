package controller

import (
	"context"
	"fmt"

	"xiangqi/internal/enginebridge"
	"xiangqi/internal/xiangqi"
)

// Status is the game-state machine's terminal classification.
type Status int

const (
	StatusPlaying Status = iota
	StatusCheckmate
	StatusStalemate
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Notification is a value written into the controller's single pending-event
// slot and drained by ConsumeNotification.
type Notification string

const NotificationCheck Notification = "check"

// Engine is the subset of the external UCI-speaking capability the
// controller itself needs: legality rulings and static evaluation for
// move() and Evaluate(), plus the queries used to settle terminal status.
// The AI driver consumes a broader interface defined in its own package.
type Engine interface {
	IsMoveLegal(ctx context.Context, fen, uci string) (legal bool, reason string, err error)
	Evaluate(ctx context.Context, fen string) (centipawns int, err error)
	IsCheckmate(ctx context.Context, fen string) (bool, error)
	IsStalemate(ctx context.Context, fen string) (bool, error)
	LegalMoves(ctx context.Context, fen string) ([]string, error)
	Analyze(ctx context.Context, fen string, depth, timeLimitMs int) (enginebridge.Analysis, error)
}

// PieceSnapshot is a read-only view of one live piece, safe to hand to
// presentation code: it shares no pointers with the controller's board.
type PieceSnapshot struct {
	ID    int
	Type  xiangqi.PieceType
	Color xiangqi.Side
	File  int
	Rank  int
}

// Square is a single board coordinate.
type Square struct {
	File, Rank int
}

// MoveRecord is one completed move as it appears in move history: UCI
// notation plus a marker distinguishing quiet moves from captures.
type MoveRecord struct {
	UCI     string
	Capture bool
}

// Notation renders the move history entry as "<uci>x" for a capture or
// "<uci>-" for a quiet move, per the observable move-history format.
func (m MoveRecord) Notation() string {
	marker := "-"
	if m.Capture {
		marker = "x"
	}
	return fmt.Sprintf("%s%s", m.UCI, marker)
}

// Stats is the snapshot returned by GetStats.
type Stats struct {
	Turn             xiangqi.Side
	Status           Status
	FullMoveCount    int
	RedTotalMillis   int64
	BlackTotalMillis int64
	LastMoveMillis   int64
}

// Snapshot is the immutable view of controller state passed to listeners
// after every state change.
type Snapshot struct {
	FEN         string
	Turn        xiangqi.Side
	Status      Status
	Pieces      []PieceSnapshot
	MoveHistory []MoveRecord
	FENHistory  []string
	LastMove    *Move
	LastHint    *Move
	Stats       Stats
}

// Move is a from/to pair as exposed on the observable state surface.
type Move struct {
	From, To Square
}
