package controller

import (
	"fmt"
	"log"

	"github.com/hashicorp/go-multierror"
)

// Subscribe registers a listener invoked synchronously after every accepted
// state change. The returned function removes it; callbacks must not
// mutate controller state and must not block.
func (c *Controller) Subscribe(l Listener) (unsubscribe func()) {
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = l
	return func() { delete(c.listeners, id) }
}

// broadcast fans the current snapshot out to every listener. One
// listener's panic is isolated from the rest: it is recovered, collected
// and logged, but does not stop delivery to the others.
func (c *Controller) broadcast() {
	snap := c.snapshot()
	var errs error
	for id, l := range c.listeners {
		func(id int, l Listener) {
			defer func() {
				if r := recover(); r != nil {
					errs = multierror.Append(errs, fmt.Errorf("listener %d panicked: %v", id, r))
				}
			}()
			l(snap)
		}(id, l)
	}
	if errs != nil {
		log.Printf("controller: listener errors: %v", errs)
	}
}

func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		FEN:         c.CurrentFEN(),
		Turn:        c.turn,
		Status:      c.status,
		Pieces:      c.Pieces(),
		MoveHistory: c.MoveHistory(),
		FENHistory:  c.FENHistory(),
		LastMove:    c.lastMove,
		LastHint:    c.lastHint,
		Stats:       c.GetStats(),
	}
}

// ConsumeNotification drains the single pending-event slot, returning nil
// if nothing is pending.
func (c *Controller) ConsumeNotification() *Notification {
	n := c.pending
	c.pending = nil
	return n
}
