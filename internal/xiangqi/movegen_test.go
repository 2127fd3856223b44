package xiangqi

import "testing"

func hasTarget(moves []Move, file, rank int) bool {
	for _, m := range moves {
		if m.ToFile == file && m.ToRank == rank {
			return true
		}
	}
	return false
}

func TestKingConfinedToPalace(t *testing.T) {
	b := NewBoard()
	king := &Piece{ID: 1, Type: PieceKing, Color: Red, File: 3, Rank: 9}
	b.Place(king)
	moves := GenerateMoves(b, king)
	if hasTarget(moves, 2, 9) {
		t.Fatalf("red king at (3,9) must not reach (2,9): outside the palace")
	}
	if !hasTarget(moves, 4, 9) {
		t.Fatalf("red king at (3,9) should reach (4,9): inside the palace")
	}
}

func TestElephantCannotCrossRiver(t *testing.T) {
	b := NewBoard()
	elephant := &Piece{ID: 1, Type: PieceElephant, Color: Red, File: 2, Rank: 5}
	b.Place(elephant)
	moves := GenerateMoves(b, elephant)
	if hasTarget(moves, 0, 3) {
		t.Fatalf("red elephant at (2,5) must not cross the river to (0,3)")
	}
}

func TestElephantEyeBlocked(t *testing.T) {
	b := NewBoard()
	elephant := &Piece{ID: 1, Type: PieceElephant, Color: Red, File: 2, Rank: 9}
	b.Place(elephant)
	blocker := &Piece{ID: 2, Type: PiecePawn, Color: Red, File: 3, Rank: 8}
	b.Place(blocker)
	moves := GenerateMoves(b, elephant)
	if hasTarget(moves, 4, 7) {
		t.Fatalf("elephant eye at (3,8) is occupied, (4,7) should be unreachable")
	}
}

func TestHorseLegBlocked(t *testing.T) {
	b := NewBoard()
	horse := &Piece{ID: 1, Type: PieceHorse, Color: Red, File: 1, Rank: 7}
	b.Place(horse)
	leg := &Piece{ID: 2, Type: PiecePawn, Color: Red, File: 1, Rank: 6}
	b.Place(leg)
	moves := GenerateMoves(b, horse)
	if hasTarget(moves, 2, 5) || hasTarget(moves, 0, 5) {
		t.Fatalf("horse leg at (1,6) is blocked, neither (2,5) nor (0,5) should be reachable")
	}
}

func TestHorseLegClearAllowsMove(t *testing.T) {
	b := NewBoard()
	horse := &Piece{ID: 1, Type: PieceHorse, Color: Red, File: 1, Rank: 9}
	b.Place(horse)
	moves := GenerateMoves(b, horse)
	if !hasTarget(moves, 2, 7) {
		t.Fatalf("horse at (1,9) with clear leg should reach (2,7)")
	}
}

func TestCannonRequiresExactlyOneScreenToCapture(t *testing.T) {
	newSetup := func(screens int) *Board {
		b := NewBoard()
		b.Place(&Piece{ID: 1, Type: PieceCannon, Color: Red, File: 4, Rank: 7})
		b.Place(&Piece{ID: 2, Type: PieceKing, Color: Black, File: 4, Rank: 0})
		id := 3
		for i := 0; i < screens; i++ {
			b.Place(&Piece{ID: id, Type: PiecePawn, Color: Red, File: 4, Rank: 2 + i})
			id++
		}
		return b
	}

	if err := Validate(newSetup(0), 4, 7, 4, 0); err == nil {
		t.Fatalf("cannon capture with zero screens should fail")
	}
	if err := Validate(newSetup(1), 4, 7, 4, 0); err != nil {
		t.Fatalf("cannon capture with exactly one screen should succeed: %v", err)
	}
	if err := Validate(newSetup(2), 4, 7, 4, 0); err == nil {
		t.Fatalf("cannon capture with two screens should fail")
	}
}

func TestRookRequiresClearPath(t *testing.T) {
	b := NewBoard()
	b.Place(&Piece{ID: 1, Type: PieceRook, Color: Red, File: 0, Rank: 9})
	b.Place(&Piece{ID: 2, Type: PiecePawn, Color: Black, File: 0, Rank: 4})
	if err := Validate(b, 0, 9, 0, 0); err == nil {
		t.Fatalf("rook should not jump over an intervening piece")
	}
	if err := Validate(b, 0, 9, 0, 4); err != nil {
		t.Fatalf("rook capturing the first piece on its path should succeed: %v", err)
	}
}

func TestPawnMobilityBeforeAndAfterRiver(t *testing.T) {
	b := NewBoard()
	preRiver := &Piece{ID: 1, Type: PiecePawn, Color: Red, File: 4, Rank: 6}
	b.Place(preRiver)
	moves := GenerateMoves(b, preRiver)
	if hasTarget(moves, 3, 6) || hasTarget(moves, 5, 6) {
		t.Fatalf("pawn before crossing the river must not move sideways")
	}
	if !hasTarget(moves, 4, 5) {
		t.Fatalf("pawn should be able to advance one step")
	}

	postRiver := &Piece{ID: 2, Type: PiecePawn, Color: Red, File: 4, Rank: 4}
	b2 := NewBoard()
	b2.Place(postRiver)
	moves2 := GenerateMoves(b2, postRiver)
	if !hasTarget(moves2, 3, 4) || !hasTarget(moves2, 5, 4) {
		t.Fatalf("pawn after crossing the river should move sideways")
	}
	if hasTarget(moves2, 4, 5) {
		t.Fatalf("pawn must never move backward")
	}
}
