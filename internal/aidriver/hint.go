package aidriver

import (
	"context"

	"xiangqi/internal/controller"
	"xiangqi/internal/enginebridge"
	"xiangqi/internal/xiangqi"
)

// HintResult is the outcome of a Hint request.
type HintResult struct {
	UCI  string
	Busy bool
	None bool
}

// Hint implements §4.7's hint flow: temporarily enable the engine at the
// requested difficulty, request best_move from the current position,
// restore the previous engine enabled/difficulty state, store the decoded
// move as the controller's lastHint, and notify listeners.
func (d *Driver) Hint(ctx context.Context, difficulty int) (HintResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	prevEnabled, prevLevel := d.ctrl.AIEnabled(), d.ctrl.AILevel()
	d.ctrl.SetAIEnabled(true)
	d.ctrl.SetAILevel(difficulty)
	defer func() {
		d.ctrl.SetAIEnabled(prevEnabled)
		d.ctrl.SetAILevel(prevLevel)
	}()

	uci, err := d.engine.BestMove(ctx, d.ctrl.CurrentFEN(), difficulty)
	if err != nil {
		if err == enginebridge.ErrBusy {
			return HintResult{Busy: true}, nil
		}
		return HintResult{}, err
	}
	if uci == "" || uci == "(none)" {
		return HintResult{None: true}, nil
	}

	ff, fr, tf, tr, ok := xiangqi.ParseUCI(uci)
	if !ok {
		return HintResult{}, controller.ErrNoSuchHint
	}
	d.ctrl.SetLastHint(&controller.Move{
		From: controller.Square{File: ff, Rank: fr},
		To:   controller.Square{File: tf, Rank: tr},
	})
	return HintResult{UCI: uci}, nil
}
