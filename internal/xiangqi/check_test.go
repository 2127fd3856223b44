package xiangqi

import "testing"

func TestFlyingGeneralCheck(t *testing.T) {
	b := NewBoard()
	b.Place(&Piece{ID: 1, Type: PieceKing, Color: Red, File: 4, Rank: 9})
	b.Place(&Piece{ID: 2, Type: PieceKing, Color: Black, File: 4, Rank: 0})
	if !IsInCheck(b, Red) {
		t.Fatalf("kings facing on an open file must be in check (flying general)")
	}
	if !IsInCheck(b, Black) {
		t.Fatalf("flying general check is symmetric")
	}
}

func TestFlyingGeneralBlockedByIntervener(t *testing.T) {
	b := NewBoard()
	b.Place(&Piece{ID: 1, Type: PieceKing, Color: Red, File: 4, Rank: 9})
	b.Place(&Piece{ID: 2, Type: PieceKing, Color: Black, File: 4, Rank: 0})
	b.Place(&Piece{ID: 3, Type: PiecePawn, Color: Red, File: 4, Rank: 5})
	if IsInCheck(b, Red) {
		t.Fatalf("an intervening piece should block the flying-general rule")
	}
}

func TestRookCheck(t *testing.T) {
	b := NewBoard()
	b.Place(&Piece{ID: 1, Type: PieceKing, Color: Red, File: 4, Rank: 9})
	b.Place(&Piece{ID: 2, Type: PieceKing, Color: Black, File: 0, Rank: 0})
	b.Place(&Piece{ID: 3, Type: PieceRook, Color: Black, File: 4, Rank: 3})
	if !IsInCheck(b, Red) {
		t.Fatalf("red king should be in check from a rook on the same open file")
	}
}

func TestCannonCheckRequiresScreen(t *testing.T) {
	b := NewBoard()
	b.Place(&Piece{ID: 1, Type: PieceKing, Color: Red, File: 4, Rank: 9})
	b.Place(&Piece{ID: 2, Type: PieceKing, Color: Black, File: 0, Rank: 0})
	b.Place(&Piece{ID: 3, Type: PieceCannon, Color: Black, File: 4, Rank: 3})
	if IsInCheck(b, Red) {
		t.Fatalf("a cannon with no screen should not give check")
	}
	b.Place(&Piece{ID: 4, Type: PiecePawn, Color: Black, File: 4, Rank: 6})
	if !IsInCheck(b, Red) {
		t.Fatalf("a cannon with exactly one screen should give check")
	}
}

func TestHorseCheck(t *testing.T) {
	b := NewBoard()
	b.Place(&Piece{ID: 1, Type: PieceKing, Color: Red, File: 4, Rank: 9})
	b.Place(&Piece{ID: 2, Type: PieceKing, Color: Black, File: 0, Rank: 0})
	b.Place(&Piece{ID: 3, Type: PieceHorse, Color: Black, File: 3, Rank: 7})
	if !IsInCheck(b, Red) {
		t.Fatalf("horse at (3,7) should check red king at (4,9) via the day-shaped geometry")
	}

	b.Place(&Piece{ID: 4, Type: PiecePawn, Color: Black, File: 3, Rank: 8})
	if IsInCheck(b, Red) {
		t.Fatalf("blocking the horse leg should remove the check")
	}
}

func TestPawnCheckAfterCrossingRiver(t *testing.T) {
	b := NewBoard()
	b.Place(&Piece{ID: 1, Type: PieceKing, Color: Red, File: 4, Rank: 9})
	b.Place(&Piece{ID: 2, Type: PieceKing, Color: Black, File: 0, Rank: 0})
	b.Place(&Piece{ID: 3, Type: PiecePawn, Color: Black, File: 4, Rank: 8})
	if !IsInCheck(b, Red) {
		t.Fatalf("black pawn directly above the red king should give check")
	}
}
