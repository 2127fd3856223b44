package enginetest

import (
	"context"
	"testing"

	"xiangqi/internal/xiangqi"
)

func TestIsMoveLegalDelegatesToLocalValidator(t *testing.T) {
	e := New()
	legal, _, err := e.IsMoveLegal(context.Background(), xiangqi.InitialFEN, "b2e2")
	if err != nil {
		t.Fatal(err)
	}
	if !legal {
		t.Fatalf("b2e2 should be legal from the initial position")
	}

	legal, reason, err := e.IsMoveLegal(context.Background(), xiangqi.InitialFEN, "b0b1")
	if err != nil {
		t.Fatal(err)
	}
	if legal {
		t.Fatalf("b0b1 is not an L-shaped horse move and should be rejected: reason=%q", reason)
	}
}

func TestBestMoveIsAlwaysInLegalMoves(t *testing.T) {
	e := New()
	moves, err := e.LegalMoves(context.Background(), xiangqi.InitialFEN)
	if err != nil {
		t.Fatal(err)
	}
	best, err := e.BestMove(context.Background(), xiangqi.InitialFEN, 5)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, m := range moves {
		if m == best {
			found = true
		}
	}
	if !found {
		t.Fatalf("best move %q is not among the legal moves from the initial position", best)
	}
}

func TestEvaluateInitialPositionIsMaterialSymmetric(t *testing.T) {
	e := New()
	score, err := e.Evaluate(context.Background(), xiangqi.InitialFEN)
	if err != nil {
		t.Fatal(err)
	}
	if score != 0 {
		t.Fatalf("initial position is materially symmetric, expected score 0, got %d", score)
	}
}

func TestIsCheckmateFalseFromInitialPosition(t *testing.T) {
	e := New()
	mate, err := e.IsCheckmate(context.Background(), xiangqi.InitialFEN)
	if err != nil {
		t.Fatal(err)
	}
	if mate {
		t.Fatalf("initial position must not be checkmate")
	}
}
