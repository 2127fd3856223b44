// Package aidriver implements the asynchronous orchestration of AI turns
// described in §4.7: opponent-response moves, the hint flow, opening-book
// first moves, and the retry policy behind opponent-response moves.
package aidriver

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"

	"xiangqi/internal/book"
	"xiangqi/internal/controller"
	"xiangqi/internal/xiangqi"
)

// Engine is the full capability surface the driver needs: everything
// controller.Engine offers plus best_move, which the controller itself
// never calls directly.
type Engine interface {
	controller.Engine
	BestMove(ctx context.Context, fen string, difficulty int) (string, error)
}

var ErrMaxAttemptsExceeded = errors.New("aidriver: move rejected after all retry attempts")

// Driver orchestrates AI turns against a single Controller. It serializes
// its own calls into the controller with a mutex: the controller itself is
// not safe for concurrent use, and a self-play loop running in its own
// goroutine can otherwise race a concurrently requested Hint.
type Driver struct {
	mu sync.Mutex

	ctrl   *controller.Controller
	engine Engine

	presentationDelay time.Duration
	selfPlay          bool

	redBook, blackBook *book.Book
	rng                *rand.Rand
}

// New wires a driver to a controller and its engine. presentationDelay
// models the short pause a UI inserts before an AI reply is requested;
// pass 0 for tests.
func New(ctrl *controller.Controller, engine Engine, presentationDelay time.Duration) *Driver {
	return &Driver{ctrl: ctrl, engine: engine, presentationDelay: presentationDelay}
}

// SetBooks installs the per-side opening-book tables used by
// PlayOpeningBookMove.
func (d *Driver) SetBooks(redBook, blackBook *book.Book, rng *rand.Rand) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.redBook, d.blackBook = redBook, blackBook
	d.rng = rng
}

// SetSelfPlay toggles red-AI-vs-black-AI mode.
func (d *Driver) SetSelfPlay(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selfPlay = enabled
}

func (d *Driver) SelfPlay() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selfPlay
}

// attemptMove tries applying uci to the controller, translating a
// dual-validation rejection into a retryable failure. It never calls the
// engine itself: the controller's own move() pipeline (§4.6) is the single
// place engine/local validation happens.
func (d *Driver) attemptMove(ctx context.Context, uci string) error {
	ff, fr, tf, tr, ok := xiangqi.ParseUCI(uci)
	if !ok {
		return errors.New("aidriver: engine returned a malformed uci move")
	}
	return d.ctrl.Move(ctx, ff, fr, tf, tr)
}

// emergencyMove implements the retry-exhausted fallback of §4.7: query the
// engine for any legal move and play it, or mark the game stalemate if
// none exists.
func (d *Driver) emergencyMove(ctx context.Context) error {
	moves, err := d.engine.LegalMoves(ctx, d.ctrl.CurrentFEN())
	if err != nil || len(moves) == 0 {
		log.Printf("aidriver: no emergency move available, forcing stalemate")
		d.ctrl.ForceStalemate()
		return nil
	}
	return d.attemptMove(ctx, moves[0])
}
