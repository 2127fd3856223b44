package controller

import (
	"context"
	"time"

	"xiangqi/internal/xiangqi"
)

// Undo pops the last FEN/move pair and restores the prior position,
// re-deriving pieces with identity-preserving reparse against the
// now-current board so that undo never causes unrelated id churn beyond
// what the reparse rules already allow for captures.
func (c *Controller) Undo(ctx context.Context) error {
	if len(c.fenHistory) < 2 {
		return ErrNothingToUndo
	}

	prevBoard := c.board
	c.fenHistory = c.fenHistory[:len(c.fenHistory)-1]
	c.moveHistory = c.moveHistory[:len(c.moveHistory)-1]

	restoredFEN := c.fenHistory[len(c.fenHistory)-1]
	board, turn, err := xiangqi.DecodeWithIdentity(restoredFEN, prevBoard)
	if err != nil {
		return err
	}

	c.board = board
	c.turn = turn
	c.status = StatusPlaying
	c.lastHint = nil
	c.lastMove = previousMove(c.moveHistory)
	c.currentMoveStart = time.Now()

	c.updateTerminalStatus(ctx)
	c.pending = nil
	if xiangqi.IsInCheck(c.board, c.turn) {
		n := NotificationCheck
		c.pending = &n
	}

	c.broadcast()
	return nil
}

// previousMove re-derives LastMove from the move history's new top entry,
// or nil if history is back to its single initial FEN.
func previousMove(history []MoveRecord) *Move {
	if len(history) == 0 {
		return nil
	}
	last := history[len(history)-1]
	ff, fr, tf, tr, ok := xiangqi.ParseUCI(last.UCI)
	if !ok {
		return nil
	}
	return &Move{From: Square{File: ff, Rank: fr}, To: Square{File: tf, Rank: tr}}
}

// Reset restores the initial FEN, clears histories to their one-entry
// starting point, resets timers and hint markers, and notifies listeners.
func (c *Controller) Reset(ctx context.Context, initialFEN string) error {
	if initialFEN == "" {
		initialFEN = xiangqi.InitialFEN
	}
	board, turn, err := xiangqi.Decode(initialFEN)
	if err != nil {
		return err
	}

	c.board = board
	c.turn = turn
	c.status = StatusPlaying
	c.fenHistory = []string{initialFEN}
	c.moveHistory = nil
	c.lastMove = nil
	c.lastHint = nil
	c.redTotalMillis = 0
	c.blackTotalMillis = 0
	c.lastMoveMillis = 0
	c.currentMoveStart = time.Now()
	c.pending = nil

	c.broadcast()
	return nil
}
