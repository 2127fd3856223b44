package enginebridge

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"xiangqi/internal/xiangqi"
)

// Analysis mirrors the analyze() reply shape of the engine contract.
type Analysis struct {
	BestMove string
	Ponder   string
	ScoreCP  int
	Depth    int
	Nodes    int64
	NPS      int64
	TimeMs   int64
	PV       []string
}

// Bridge is the process-wide singleton wrapping one external engine
// subprocess. Every exported method suspends the caller (via ctx) until a
// reply arrives; at most one best_move request may be outstanding.
//
// Only the search-shaped operations (best_move, analyze, evaluate) and the
// lifecycle commands (initialize, configure, set_position, ucinewgame,
// stop) are actually sent to the subprocess: those are the vocabulary a
// real UCI engine speaks. is_move_legal, legal_moves, is_checkmate and
// is_stalemate have no UCI equivalent, so the bridge answers them itself
// against internal/xiangqi, the same way internal/enginebridge/enginetest's
// in-process stub does.
type Bridge struct {
	mu       sync.Mutex
	state    State
	cfg      Config
	t        *transport
	cache    *resultCache
	thinking bool
	disposed bool
}

// New constructs an uninitialized bridge. cacheDir may be empty, which
// opens the evaluate/analyze cache in memory.
func New(cacheDir string) (*Bridge, error) {
	cache, err := openResultCache(cacheDir)
	if err != nil {
		return nil, errors.Wrap(err, "enginebridge: open cache")
	}
	return &Bridge{state: StateUninitialized, cache: cache}, nil
}

// State reports the bridge's own lifecycle state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Initialize starts the engine subprocess, completes the "uci"/"isready"
// handshake, and applies the mandated startup configuration (max(1,
// ncpu/2) search threads, 128 MB hash). It is idempotent: calling it again
// while ready is a no-op.
func (b *Bridge) Initialize(ctx context.Context, command string, args ...string) error {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return ErrDisposed
	}
	if b.state == StateReady || b.state == StateInitializing {
		b.mu.Unlock()
		return nil
	}
	b.state = StateInitializing
	b.mu.Unlock()

	t, err := startTransport(command, args...)
	if err != nil {
		b.mu.Lock()
		b.state = StateError
		b.mu.Unlock()
		return err
	}

	if err := t.handshake(ctx); err != nil {
		b.mu.Lock()
		b.state = StateError
		b.mu.Unlock()
		return err
	}

	b.mu.Lock()
	b.t = t
	b.state = StateReady
	b.mu.Unlock()

	if err := b.Configure(ctx, DefaultConfig(runtime.NumCPU())); err != nil {
		b.mu.Lock()
		b.state = StateError
		b.mu.Unlock()
		return err
	}
	return nil
}

func (b *Bridge) transportOrErr() (*transport, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return nil, ErrDisposed
	}
	if b.t == nil {
		return nil, ErrUnreachable
	}
	return b.t, nil
}

// Configure sends the threading/hash/skill settings via "setoption" and
// stores the whole config; depth and move time are not sent as options but
// are used by goLine for later searches.
func (b *Bridge) Configure(ctx context.Context, cfg Config) error {
	t, err := b.transportOrErr()
	if err != nil {
		return err
	}
	if err := t.configure(ctx, cfg); err != nil {
		return err
	}
	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()
	return nil
}

// SetPosition tells the engine which FEN to search or analyze from next.
func (b *Bridge) SetPosition(ctx context.Context, fen string) error {
	t, err := b.transportOrErr()
	if err != nil {
		return err
	}
	return t.setPosition(ctx, fen)
}

// beginThinking enforces the one-outstanding-bestmove-request rule.
func (b *Bridge) beginThinking() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.thinking {
		return ErrBusy
	}
	b.thinking = true
	b.state = StateThinking
	return nil
}

func (b *Bridge) endThinking() {
	b.mu.Lock()
	b.thinking = false
	if b.state == StateThinking {
		b.state = StateReady
	}
	b.mu.Unlock()
}

// goLine picks "go depth N" or "go movetime N" for one search. depth
// overrides the configured default depth when positive; timeLimitMs
// overrides the configured move time. With neither, it falls back to the
// bridge's own configured depth/move-time from Configure.
func (b *Bridge) goLine(depth, timeLimitMs int) string {
	b.mu.Lock()
	cfg := b.cfg
	b.mu.Unlock()

	switch {
	case depth > 0:
		return fmt.Sprintf("go depth %d", depth)
	case timeLimitMs > 0:
		return fmt.Sprintf("go movetime %d", timeLimitMs)
	case cfg.Depth > 0:
		return fmt.Sprintf("go depth %d", cfg.Depth)
	case cfg.MoveTimeMs > 0:
		return fmt.Sprintf("go movetime %d", cfg.MoveTimeMs)
	default:
		return "go depth 8"
	}
}

// BestMove requests a move at the given difficulty, mapped onto UCI's
// search-depth vocabulary. A request arriving while one is already
// outstanding returns ErrBusy immediately instead of queuing, matching the
// ai_busy sentinel of §4.6.
func (b *Bridge) BestMove(ctx context.Context, fen string, difficulty int) (string, error) {
	if err := b.beginThinking(); err != nil {
		return "", err
	}
	defer b.endThinking()

	t, err := b.transportOrErr()
	if err != nil {
		return "", err
	}
	if err := t.setPosition(ctx, fen); err != nil {
		return "", err
	}
	res, err := t.search(ctx, b.goLine(difficulty, 0))
	if err != nil {
		return "", err
	}
	if res.BestMove == "" {
		return "(none)", nil
	}
	return res.BestMove, nil
}

// Analyze runs a bounded search and returns full search telemetry. A cache
// hit skips the engine round trip entirely.
func (b *Bridge) Analyze(ctx context.Context, fen string, depth, timeLimitMs int) (Analysis, error) {
	if a, ok := b.cache.getAnalyze(fen, depth, timeLimitMs); ok {
		return a, nil
	}
	t, err := b.transportOrErr()
	if err != nil {
		return Analysis{}, err
	}
	if err := t.setPosition(ctx, fen); err != nil {
		return Analysis{}, err
	}
	res, err := t.search(ctx, b.goLine(depth, timeLimitMs))
	if err != nil {
		return Analysis{}, err
	}
	a := Analysis{
		BestMove: res.BestMove,
		Ponder:   res.Ponder,
		ScoreCP:  res.ScoreCP,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		NPS:      res.NPS,
		TimeMs:   res.TimeMs,
		PV:       res.PV,
	}
	b.cache.putAnalyze(fen, depth, timeLimitMs, a)
	return a, nil
}

// Evaluate returns a cached or freshly requested static centipawn score,
// read off the "score cp" field of a depth-1 probe: real UCI has no
// standalone static-eval command, only the score a search reports.
func (b *Bridge) Evaluate(ctx context.Context, fen string) (int, error) {
	if score, ok := b.cache.getEvaluate(fen); ok {
		return score, nil
	}
	t, err := b.transportOrErr()
	if err != nil {
		return 0, err
	}
	if err := t.setPosition(ctx, fen); err != nil {
		return 0, err
	}
	res, err := t.search(ctx, "go depth 1")
	if err != nil {
		return 0, err
	}
	b.cache.putEvaluate(fen, res.ScoreCP)
	return res.ScoreCP, nil
}

// IsMoveLegal implements the engine layer of §4.6's dual-validation
// pipeline. There is no UCI command for a legality ruling, so it is
// answered locally against the same rule set the local-fallback validator
// uses, mirroring enginetest.Engine.IsMoveLegal exactly.
func (b *Bridge) IsMoveLegal(ctx context.Context, fen, uci string) (bool, string, error) {
	if _, err := b.transportOrErr(); err != nil {
		return false, "", err
	}
	board, _, err := xiangqi.Decode(fen)
	if err != nil {
		return false, "", err
	}
	ff, fr, tf, tr, ok := xiangqi.ParseUCI(uci)
	if !ok {
		return false, "malformed uci move", nil
	}
	if err := xiangqi.Validate(board, ff, fr, tf, tr); err != nil {
		return false, err.Error(), nil
	}
	return true, "", nil
}

// LegalMoves returns every UCI move the local generator considers
// pseudo-legal from fen. Like IsMoveLegal, this has no UCI wire
// equivalent and is answered in-process.
func (b *Bridge) LegalMoves(ctx context.Context, fen string) ([]string, error) {
	if _, err := b.transportOrErr(); err != nil {
		return nil, err
	}
	board, turn, err := xiangqi.Decode(fen)
	if err != nil {
		return nil, err
	}
	moves := xiangqi.GenerateAllMoves(board, turn)
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.UCI())
	}
	return out, nil
}

// IsInCheck reports whether the side to move in fen is in check.
func (b *Bridge) IsInCheck(ctx context.Context, fen string) (bool, error) {
	if _, err := b.transportOrErr(); err != nil {
		return false, err
	}
	board, turn, err := xiangqi.Decode(fen)
	if err != nil {
		return false, err
	}
	return xiangqi.IsInCheck(board, turn), nil
}

// IsCheckmate reports checkmate as "side to move is in check and has no
// pseudo-legal replies", the same local heuristic enginetest.Engine uses
// in place of engine-authoritative search.
func (b *Bridge) IsCheckmate(ctx context.Context, fen string) (bool, error) {
	if _, err := b.transportOrErr(); err != nil {
		return false, err
	}
	board, turn, err := xiangqi.Decode(fen)
	if err != nil {
		return false, err
	}
	if !xiangqi.IsInCheck(board, turn) {
		return false, nil
	}
	return len(xiangqi.GenerateAllMoves(board, turn)) == 0, nil
}

// IsStalemate mirrors IsCheckmate's local heuristic for the not-in-check
// case.
func (b *Bridge) IsStalemate(ctx context.Context, fen string) (bool, error) {
	if _, err := b.transportOrErr(); err != nil {
		return false, err
	}
	board, turn, err := xiangqi.Decode(fen)
	if err != nil {
		return false, err
	}
	if xiangqi.IsInCheck(board, turn) {
		return false, nil
	}
	return len(xiangqi.GenerateAllMoves(board, turn)) == 0, nil
}

// Stop asks the engine to abandon any in-flight search by sending "stop";
// it does not wait for a reply, since the pending best_move/analyze call
// itself will observe the resulting "bestmove" line.
func (b *Bridge) Stop(ctx context.Context) error {
	t, err := b.transportOrErr()
	if err != nil {
		return err
	}
	return t.stop()
}

// Reset reinitializes the engine's internal game state via "ucinewgame"
// without tearing down the process.
func (b *Bridge) Reset(ctx context.Context) error {
	t, err := b.transportOrErr()
	if err != nil {
		return err
	}
	return t.newGame(ctx)
}

// Info returns the "id name"/"id author" identity the engine reported
// during its handshake.
func (b *Bridge) Info(ctx context.Context) (string, error) {
	t, err := b.transportOrErr()
	if err != nil {
		return "", err
	}
	return t.info(), nil
}

// Dispose tears down the subprocess and the result cache concurrently,
// aggregating whichever fails first; it is idempotent.
func (b *Bridge) Dispose() error {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return nil
	}
	b.disposed = true
	t := b.t
	cache := b.cache
	b.state = StateUninitialized
	b.mu.Unlock()

	g := new(errgroup.Group)
	g.Go(func() error {
		if t == nil {
			return nil
		}
		return t.close()
	})
	g.Go(func() error {
		return cache.close()
	})
	return g.Wait()
}
