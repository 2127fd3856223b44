package controller

import (
	"context"
	"log"
)

// updateTerminalStatus settles §7's terminal error kind after a move has
// been applied. King capture is resolved locally (it is a direct
// consequence of board mutation); checkmate and stalemate are
// engine-authoritative and are only evaluated when an engine is present.
// A positive stalemate verdict is cross-checked against legal_moves per
// the "(none)" reply-variance note in §9 before it is trusted.
func (c *Controller) updateTerminalStatus(ctx context.Context) {
	if c.board.King(c.turn.Opposite()) == nil || c.board.King(c.turn) == nil {
		c.status = StatusCheckmate
		return
	}
	if c.engine == nil {
		c.maybeDeclareRepetitionDraw()
		return
	}

	fen := c.CurrentFEN()
	if mate, err := c.engine.IsCheckmate(ctx, fen); err == nil && mate {
		c.status = StatusCheckmate
		return
	}
	if stale, err := c.engine.IsStalemate(ctx, fen); err == nil && stale {
		if moves, lmErr := c.engine.LegalMoves(ctx, fen); lmErr == nil && len(moves) == 0 {
			c.status = StatusStalemate
			return
		}
		log.Printf("controller: engine reported stalemate but legal_moves was non-empty, ignoring")
	}
	c.maybeDeclareRepetitionDraw()
}

// ForceStalemate is used by the AI driver's retry-exhausted fallback of
// §4.7: when the engine reports zero legal moves for the side to move and
// no emergency move can be played, the controller has no move to apply at
// all, so the driver settles the status directly instead of going through
// applyAcceptedMove.
func (c *Controller) ForceStalemate() {
	c.status = StatusStalemate
	c.broadcast()
}

// maybeDeclareRepetitionDraw implements the one terminal condition the
// engine contract in §6.2 has no operation for: the engine never reports
// "draw" directly, so the controller determines it mechanically from data
// it already owns, without judging the legality of any move. Three
// occurrences of the same (position, turn) pair in fenHistory settle it.
func (c *Controller) maybeDeclareRepetitionDraw() {
	current := c.CurrentFEN()
	key := positionKey(current)
	count := 0
	for _, fen := range c.fenHistory {
		if positionKey(fen) == key {
			count++
		}
	}
	if count >= 3 {
		c.status = StatusDraw
	}
}

// positionKey strips the halfmove/fullmove counters from a FEN so that
// repetition counting only compares position and turn, per the
// "mechanical, judgment-free" contract of maybeDeclareRepetitionDraw.
func positionKey(fen string) string {
	fields := 0
	for i, c := range fen {
		if c == ' ' {
			fields++
			if fields == 4 {
				return fen[:i]
			}
		}
	}
	return fen
}
