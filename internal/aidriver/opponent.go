package aidriver

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"xiangqi/internal/controller"
)

// RunOpponentTurn implements §4.7's opponent-response flow: after a short
// presentation delay, request best_move at the configured difficulty,
// retry up to three times against the controller's own validation
// pipeline, apply the accepted move, and — if self-play is enabled and the
// game is still playing — recurse into the other side's turn.
func (d *Driver) RunOpponentTurn(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runOpponentTurnLocked(ctx)
}

func (d *Driver) runOpponentTurnLocked(ctx context.Context) error {
	if !d.ctrl.AIEnabled() || d.ctrl.Status() != controller.StatusPlaying {
		return nil
	}

	if d.presentationDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.presentationDelay):
		}
	}

	const maxAttempts = 3
	moved := false
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fen := d.ctrl.CurrentFEN()
		uci, err := d.engine.BestMove(ctx, fen, d.ctrl.AILevel())
		if err != nil {
			log.Printf("aidriver: best_move request failed (attempt %d/%d): %v", attempt+1, maxAttempts, err)
			continue
		}
		if uci == "" || uci == "(none)" {
			terminal, err := d.checkNoMove(ctx)
			if terminal {
				return nil
			}
			if err != nil {
				log.Printf("aidriver: legal_moves cross-check failed (attempt %d/%d): %v", attempt+1, maxAttempts, err)
			} else {
				log.Printf("aidriver: best_move reported no move but legal moves remain, retrying (attempt %d/%d)", attempt+1, maxAttempts)
			}
			continue
		}
		if err := d.attemptMove(ctx, uci); err != nil {
			log.Printf("aidriver: engine move %q rejected (attempt %d/%d): %v", uci, attempt+1, maxAttempts, err)
			continue
		}
		moved = true
		break
	}
	if !moved {
		if err := d.emergencyMove(ctx); err != nil {
			return errors.Wrap(ErrMaxAttemptsExceeded, err.Error())
		}
	}

	if d.selfPlay && d.ctrl.Status() == controller.StatusPlaying {
		return d.runOpponentTurnLocked(ctx)
	}
	return nil
}

// checkNoMove implements the "(none)"/empty reply-variance note of §9:
// cross-check a no-move best_move reply against legal_moves before
// treating the position as terminal. terminal is true only when the
// engine agrees no legal move exists at all, in which case the caller
// must stop retrying and leave the controller's forced-stalemate result
// in place rather than falling through to an emergency move.
func (d *Driver) checkNoMove(ctx context.Context) (terminal bool, err error) {
	moves, err := d.engine.LegalMoves(ctx, d.ctrl.CurrentFEN())
	if err == nil && len(moves) == 0 {
		d.ctrl.ForceStalemate()
		return true, nil
	}
	return false, err
}
