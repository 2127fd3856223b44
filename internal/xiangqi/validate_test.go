package xiangqi

import (
	"errors"
	"testing"
)

func TestValidateErrorKinds(t *testing.T) {
	b := NewBoard()
	king := &Piece{ID: 1, Type: PieceKing, Color: Red, File: 3, Rank: 9}
	b.Place(king)
	own := &Piece{ID: 2, Type: PieceAdvisor, Color: Red, File: 4, Rank: 9}
	b.Place(own)

	if err := Validate(b, 3, 9, 2, 9); !errors.Is(err, ErrPalaceViolation) {
		t.Fatalf("expected ErrPalaceViolation, got %v", err)
	}
	if err := Validate(b, 3, 9, 4, 9); !errors.Is(err, ErrSelfCapture) {
		t.Fatalf("expected ErrSelfCapture, got %v", err)
	}
	if err := Validate(b, 3, 3, 3, 4); !errors.Is(err, ErrEmptyOrigin) {
		t.Fatalf("expected ErrEmptyOrigin, got %v", err)
	}
	if err := Validate(b, 3, 9, 3, 9); !errors.Is(err, ErrSameSquare) {
		t.Fatalf("expected ErrSameSquare, got %v", err)
	}
}

func TestValidateElephantRiverAndEye(t *testing.T) {
	b := NewBoard()
	elephant := &Piece{ID: 1, Type: PieceElephant, Color: Red, File: 2, Rank: 5}
	b.Place(elephant)
	if err := Validate(b, 2, 5, 0, 3); !errors.Is(err, ErrRiverViolation) {
		t.Fatalf("expected ErrRiverViolation, got %v", err)
	}

	b2 := NewBoard()
	e2 := &Piece{ID: 1, Type: PieceElephant, Color: Red, File: 2, Rank: 9}
	b2.Place(e2)
	b2.Place(&Piece{ID: 2, Type: PiecePawn, Color: Red, File: 3, Rank: 8})
	if err := Validate(b2, 2, 9, 4, 7); !errors.Is(err, ErrElephantEye) {
		t.Fatalf("expected ErrElephantEye, got %v", err)
	}
}

func TestValidateHorseLeg(t *testing.T) {
	b := NewBoard()
	horse := &Piece{ID: 1, Type: PieceHorse, Color: Red, File: 1, Rank: 7}
	b.Place(horse)
	b.Place(&Piece{ID: 2, Type: PiecePawn, Color: Red, File: 1, Rank: 6})
	if err := Validate(b, 1, 7, 2, 5); !errors.Is(err, ErrHorseLeg) {
		t.Fatalf("expected ErrHorseLeg, got %v", err)
	}
	if err := Validate(b, 1, 7, 0, 5); !errors.Is(err, ErrHorseLeg) {
		t.Fatalf("expected ErrHorseLeg, got %v", err)
	}
}

func TestValidatePawnBackwardAndSideways(t *testing.T) {
	b := NewBoard()
	p := &Piece{ID: 1, Type: PiecePawn, Color: Red, File: 4, Rank: 6}
	b.Place(p)
	if err := Validate(b, 4, 6, 4, 7); !errors.Is(err, ErrPawnBackward) {
		t.Fatalf("expected ErrPawnBackward, got %v", err)
	}
	if err := Validate(b, 4, 6, 5, 6); !errors.Is(err, ErrPawnSideways) {
		t.Fatalf("expected ErrPawnSideways, got %v", err)
	}
}
