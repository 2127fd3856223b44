package aidriver

import (
	"context"

	"github.com/pkg/errors"

	"xiangqi/internal/xiangqi"
)

// PlayOpeningBookMove implements §4.7's opening-book first-move flow: it
// is only meaningful when the controller was freshly initialized with
// "AI moves first" enabled and no moves have been played yet. side must
// already be the side to move: the turn is not changed here, and a side
// that does not match the controller's turn is rejected with an error. The
// controller's normal turn-flip afterward returns play to the other side
// without further driver intervention.
func (d *Driver) PlayOpeningBookMove(ctx context.Context, side xiangqi.Side) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.ctrl.MoveHistory()) != 0 {
		return errors.New("aidriver: opening book only applies to the very first move")
	}
	if d.ctrl.Turn() != side {
		return errors.New("aidriver: opening book side does not match the side to move")
	}

	bk := d.redBook
	if side == xiangqi.Black {
		bk = d.blackBook
	}
	if bk == nil {
		return errors.New("aidriver: no opening book loaded for this side")
	}

	uci, err := bk.Sample(side, d.rng)
	if err != nil {
		return err
	}
	return d.attemptMove(ctx, uci)
}
