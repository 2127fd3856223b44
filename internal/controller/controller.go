package controller

import (
	"context"
	"log"
	"time"

	"xiangqi/internal/enginebridge"
	"xiangqi/internal/xiangqi"
)

// Controller is the authoritative game-state machine. It owns the board,
// move/FEN history, timers, the pending notification slot and the listener
// set. All of its methods are intended to run on a single control thread;
// it holds no internal locks.
type Controller struct {
	board  *xiangqi.Board
	turn   xiangqi.Side
	status Status

	moveHistory []MoveRecord
	fenHistory  []string

	lastMove *Move
	lastHint *Move

	redTotalMillis   int64
	blackTotalMillis int64
	currentMoveStart time.Time
	lastMoveMillis   int64

	pending *Notification

	listeners   map[int]Listener
	nextListener int

	engine Engine

	aiEnabled bool
	aiLevel   int
}

// Listener is notified, synchronously, after every accepted state change.
type Listener func(Snapshot)

// Options configures New.
type Options struct {
	InitialFEN   string
	StartingTurn xiangqi.Side
	AIEnabled    bool
	AILevel      int
	Engine       Engine
}

// New sets up the initial board, a one-entry history and fresh timers. If
// opts.Engine is non-nil and opts.AIEnabled is set, the caller is expected
// to have already kicked off the engine's own initialize() off the calling
// thread; the controller only stores the reference.
func New(opts Options) (*Controller, error) {
	fen := opts.InitialFEN
	if fen == "" {
		fen = xiangqi.InitialFEN
	}
	board, turn, err := xiangqi.Decode(fen)
	if err != nil {
		return nil, err
	}
	// starting_turn only overrides the turn baked into the default initial
	// FEN; an explicitly supplied FEN is always authoritative over its own
	// turn field, per the board-mirrors-fenHistory invariant.
	if opts.InitialFEN == "" && opts.StartingTurn == xiangqi.Black {
		turn = xiangqi.Black
		fen = xiangqi.Encode(board, turn, 0, 1)
	}

	c := &Controller{
		board:            board,
		turn:             turn,
		status:           StatusPlaying,
		fenHistory:       []string{fen},
		currentMoveStart: time.Now(),
		listeners:        make(map[int]Listener),
		engine:           opts.Engine,
		aiEnabled:        opts.AIEnabled,
		aiLevel:          opts.AILevel,
	}
	return c, nil
}

// Board exposes the live board for packages within this module (the AI
// driver and engine bridge need to format FENs and inspect pieces); it is
// not part of the observable presentation surface.
func (c *Controller) Board() *xiangqi.Board { return c.board }

// Turn returns the side to move.
func (c *Controller) Turn() xiangqi.Side { return c.turn }

// Status returns the current terminal classification.
func (c *Controller) Status() Status { return c.status }

// CurrentFEN returns the FEN at the top of fenHistory, which always mirrors
// the live board and turn.
func (c *Controller) CurrentFEN() string {
	return c.fenHistory[len(c.fenHistory)-1]
}

// AIEnabled reports whether the side to move is meant to be engine-driven.
func (c *Controller) AIEnabled() bool { return c.aiEnabled }

// SetAIEnabled implements the set_ai_enabled write-surface operation.
func (c *Controller) SetAIEnabled(enabled bool) {
	c.aiEnabled = enabled
	c.broadcast()
}

// AILevel returns the configured difficulty.
func (c *Controller) AILevel() int { return c.aiLevel }

// SetAILevel implements the set_ai_level write-surface operation.
func (c *Controller) SetAILevel(level int) {
	c.aiLevel = level
	c.broadcast()
}

// LegalTargets implements §4.2: pseudo-legal destinations only, no engine
// consultation and no self-check filtering.
func (c *Controller) LegalTargets(file, rank int) []Square {
	p := c.board.At(file, rank)
	if p == nil {
		return nil
	}
	moves := xiangqi.GenerateMoves(c.board, p)
	out := make([]Square, 0, len(moves))
	for _, m := range moves {
		out = append(out, Square{File: m.ToFile, Rank: m.ToRank})
	}
	return out
}

// Move validates and, if accepted, executes a move from (fx,fy) to (tx,ty).
// On any validation failure it returns a non-nil error and leaves all state
// untouched: no board mutation, no history append, no notification.
func (c *Controller) Move(ctx context.Context, fx, fy, tx, ty int) error {
	if c.status != StatusPlaying {
		return ErrGameOver
	}
	if !onBoard(fx, fy) || !onBoard(tx, ty) {
		return ErrInvalidCoordinate
	}
	origin := c.board.At(fx, fy)
	if origin == nil {
		return xiangqi.ErrEmptyOrigin
	}
	if origin.Color != c.turn {
		return ErrWrongTurn
	}

	uciMove := xiangqi.Move{FromFile: fx, FromRank: fy, ToFile: tx, ToRank: ty}
	uci := uciMove.UCI()

	if err := c.basicValidate(fx, fy, tx, ty); err != nil {
		return err
	}

	if err := c.dualValidate(ctx, uci, fx, fy, tx, ty); err != nil {
		return err
	}

	c.applyAcceptedMove(ctx, fx, fy, tx, ty)
	return nil
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < xiangqi.Files && rank >= 0 && rank < xiangqi.Ranks
}

// basicValidate performs the layer-1 checks of §4.6: non-identical
// endpoints, not capturing own color, and a coarse distance sanity bound.
func (c *Controller) basicValidate(fx, fy, tx, ty int) error {
	if fx == tx && fy == ty {
		return xiangqi.ErrSameSquare
	}
	target := c.board.At(tx, ty)
	origin := c.board.At(fx, fy)
	if target != nil && target.Color == origin.Color {
		return xiangqi.ErrSelfCapture
	}
	dist := abs(tx-fx) + abs(ty-fy)
	if dist > 18 {
		return xiangqi.ErrDistanceSanity
	}
	return nil
}

// dualValidate implements the layered engine/local-fallback pipeline of
// §4.6: ask the engine first, and only fall back to the local rule
// validator when the engine is absent or errors out.
func (c *Controller) dualValidate(ctx context.Context, uci string, fx, fy, tx, ty int) error {
	if c.engine != nil {
		legal, reason, err := c.engine.IsMoveLegal(ctx, c.CurrentFEN(), uci)
		if err == nil {
			if legal {
				return nil
			}
			return newEngineRejection(reason)
		}
		log.Printf("controller: engine validation unavailable, falling back to local rules: %v", err)
	}
	return xiangqi.Validate(c.board, fx, fy, tx, ty)
}

// applyAcceptedMove performs the ordered sequence §5 guarantees: timer
// rollover, board mutation, history append, turn flip, terminal check,
// check notification, listener fan-out.
func (c *Controller) applyAcceptedMove(ctx context.Context, fx, fy, tx, ty int) {
	now := time.Now()
	elapsed := now.Sub(c.currentMoveStart)
	c.accrueTime(c.turn, elapsed)

	mover := c.board.At(fx, fy)
	captured := c.board.At(tx, ty)
	if captured != nil {
		c.board.Remove(captured)
	}
	c.board.Relocate(mover, tx, ty)

	uciMove := xiangqi.Move{FromFile: fx, FromRank: fy, ToFile: tx, ToRank: ty}
	record := MoveRecord{UCI: uciMove.UCI(), Capture: captured != nil}
	c.moveHistory = append(c.moveHistory, record)

	c.turn = c.turn.Opposite()
	fen := xiangqi.Encode(c.board, c.turn, 0, c.fullMoveNumber())
	c.fenHistory = append(c.fenHistory, fen)

	c.lastMove = &Move{From: Square{File: fx, Rank: fy}, To: Square{File: tx, Rank: ty}}
	c.lastHint = nil
	c.currentMoveStart = now
	c.lastMoveMillis = elapsed.Milliseconds()

	c.updateTerminalStatus(ctx)

	if xiangqi.IsInCheck(c.board, c.turn) {
		n := NotificationCheck
		c.pending = &n
	}

	c.broadcast()
}

func (c *Controller) accrueTime(side xiangqi.Side, d time.Duration) {
	if side == xiangqi.Red {
		c.redTotalMillis += d.Milliseconds()
	} else {
		c.blackTotalMillis += d.Milliseconds()
	}
}

func (c *Controller) fullMoveNumber() int {
	return len(c.moveHistory)/2 + 1
}

// Evaluate delegates to the engine for a static centipawn score; positive
// favors red. It does not mutate controller state.
func (c *Controller) Evaluate(ctx context.Context) (int, error) {
	if c.engine == nil {
		return 0, ErrEngineUnavailable
	}
	return c.engine.Evaluate(ctx, c.CurrentFEN())
}

// Analyze delegates to the engine for a bounded search from the current
// position, returning full search telemetry for presentation layers that
// want more than a bare centipawn score. It does not mutate controller
// state.
func (c *Controller) Analyze(ctx context.Context, depth, timeLimitMs int) (enginebridge.Analysis, error) {
	if c.engine == nil {
		return enginebridge.Analysis{}, ErrEngineUnavailable
	}
	return c.engine.Analyze(ctx, c.CurrentFEN(), depth, timeLimitMs)
}

// GetStats returns the observable timing/status summary.
func (c *Controller) GetStats() Stats {
	return Stats{
		Turn:             c.turn,
		Status:           c.status,
		FullMoveCount:    c.fullMoveNumber(),
		RedTotalMillis:   c.redTotalMillis,
		BlackTotalMillis: c.blackTotalMillis,
		LastMoveMillis:   c.lastMoveMillis,
	}
}

// Pieces returns a read-only snapshot of every live piece.
func (c *Controller) Pieces() []PieceSnapshot {
	pieces := c.board.Pieces()
	out := make([]PieceSnapshot, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, PieceSnapshot{ID: p.ID, Type: p.Type, Color: p.Color, File: p.File, Rank: p.Rank})
	}
	return out
}

// MoveHistory returns the recorded moves in play order.
func (c *Controller) MoveHistory() []MoveRecord {
	out := make([]MoveRecord, len(c.moveHistory))
	copy(out, c.moveHistory)
	return out
}

// FENHistory returns the FEN stack, one entry longer than MoveHistory.
func (c *Controller) FENHistory() []string {
	out := make([]string, len(c.fenHistory))
	copy(out, c.fenHistory)
	return out
}

// LastMove returns the most recent executed move, or nil.
func (c *Controller) LastMove() *Move { return c.lastMove }

// LastHint returns the most recently stored hint, or nil.
func (c *Controller) LastHint() *Move { return c.lastHint }

// SetLastHint is used by the AI driver to record a computed hint and clear
// it is done implicitly by any subsequent accepted move.
func (c *Controller) SetLastHint(m *Move) {
	c.lastHint = m
	c.broadcast()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
