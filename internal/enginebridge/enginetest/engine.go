// Package enginetest provides an in-process stand-in for the external
// engine process: it answers the same operation set as enginebridge.Bridge
// directly in Go, delegating legality and move generation to the rules
// package instead of running a real search. It exists so AI-driver, session
// and HTTP tests never need to spawn a subprocess.
package enginetest

import (
	"context"
	"math/rand"

	"xiangqi/internal/enginebridge"
	"xiangqi/internal/xiangqi"
)

// pieceValue is a toy material table; it exists to make Evaluate return
// something directionally sane, not to play good Xiangqi.
var pieceValue = map[xiangqi.PieceType]int{
	xiangqi.PieceKing:     10000,
	xiangqi.PieceRook:     500,
	xiangqi.PieceCannon:   480,
	xiangqi.PieceHorse:    450,
	xiangqi.PieceElephant: 200,
	xiangqi.PieceAdvisor:  200,
	xiangqi.PiecePawn:     100,
}

// Engine is a deterministic (unless Rand is set) stub satisfying both
// controller.Engine and the broader interface the AI driver depends on.
type Engine struct {
	// Rand, if non-nil, is used for BestMove's random choice among legal
	// moves; nil selects the first legal move deterministically.
	Rand *rand.Rand
}

func New() *Engine { return &Engine{} }

func (e *Engine) Initialize(ctx context.Context) error { return nil }

func (e *Engine) Configure(ctx context.Context, cfg enginebridge.Config) error { return nil }

func (e *Engine) IsMoveLegal(ctx context.Context, fen, uci string) (bool, string, error) {
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

func (e *Engine) LegalMoves(ctx context.Context, fen string) ([]string, error) {
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

// BestMove picks among the legal moves the same way GenerateAllMoves
// orders them: deterministically unless Rand is set. It never simulates
// self-check, matching the "engine is the sole arbiter" boundary this
// stub is not meant to cross.
func (e *Engine) BestMove(ctx context.Context, fen string, difficulty int) (string, error) {
	moves, err := e.LegalMoves(ctx, fen)
	if err != nil {
		return "", err
	}
	if len(moves) == 0 {
		return "(none)", nil
	}
	if e.Rand != nil {
		return moves[e.Rand.Intn(len(moves))], nil
	}
	return moves[0], nil
}

func (e *Engine) Evaluate(ctx context.Context, fen string) (int, error) {
	board, _, err := xiangqi.Decode(fen)
	if err != nil {
		return 0, err
	}
	score := 0
	for _, p := range board.Pieces() {
		v := pieceValue[p.Type]
		if p.Color == xiangqi.Red {
			score += v
		} else {
			score -= v
		}
	}
	return score, nil
}

func (e *Engine) Analyze(ctx context.Context, fen string, depth, timeLimitMs int) (enginebridge.Analysis, error) {
	best, err := e.BestMove(ctx, fen, 0)
	if err != nil {
		return enginebridge.Analysis{}, err
	}
	score, err := e.Evaluate(ctx, fen)
	if err != nil {
		return enginebridge.Analysis{}, err
	}
	return enginebridge.Analysis{
		BestMove: best,
		ScoreCP:  score,
		Depth:    depth,
		Nodes:    1,
		NPS:      1,
		TimeMs:   0,
		PV:       []string{best},
	}, nil
}

func (e *Engine) IsInCheck(ctx context.Context, fen string) (bool, error) {
	board, turn, err := xiangqi.Decode(fen)
	if err != nil {
		return false, err
	}
	return xiangqi.IsInCheck(board, turn), nil
}

// IsCheckmate and IsStalemate approximate the engine-authoritative
// judgment with the one thing a local generator can safely say: whether
// the side to move has zero pseudo-legal moves at all. This stub does not
// filter for self-check, so it under-detects checkmate in positions where
// every remaining pseudo-legal move still leaves the king attacked; tests
// that need exact terminal detection construct king-missing positions
// instead of relying on this heuristic.
func (e *Engine) IsCheckmate(ctx context.Context, fen string) (bool, error) {
	board, turn, err := xiangqi.Decode(fen)
	if err != nil {
		return false, err
	}
	if !xiangqi.IsInCheck(board, turn) {
		return false, nil
	}
	return len(xiangqi.GenerateAllMoves(board, turn)) == 0, nil
}

func (e *Engine) IsStalemate(ctx context.Context, fen string) (bool, error) {
	board, turn, err := xiangqi.Decode(fen)
	if err != nil {
		return false, err
	}
	if xiangqi.IsInCheck(board, turn) {
		return false, nil
	}
	return len(xiangqi.GenerateAllMoves(board, turn)) == 0, nil
}

func (e *Engine) Stop(ctx context.Context) error  { return nil }
func (e *Engine) Reset(ctx context.Context) error { return nil }
func (e *Engine) Info(ctx context.Context) (string, error) {
	return "enginetest stub engine", nil
}
func (e *Engine) Dispose() error { return nil }
