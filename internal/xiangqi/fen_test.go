package xiangqi

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type pieceKey struct {
	Type       PieceType
	Color      Side
	File, Rank int
}

func multiset(b *Board) []pieceKey {
	out := make([]pieceKey, 0, len(b.Pieces()))
	for _, p := range b.Pieces() {
		out = append(out, pieceKey{p.Type, p.Color, p.File, p.Rank})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].File < out[j].File
	})
	return out
}

func TestRoundTripInitialPosition(t *testing.T) {
	board, turn, err := Decode(InitialFEN)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if turn != Red {
		t.Fatalf("turn = %v, want Red", turn)
	}
	if got := EncodePositionField(board); got != "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR" {
		t.Fatalf("EncodePositionField = %q", got)
	}

	board2, turn2, err := Decode(Encode(board, turn, 0, 1))
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if turn2 != turn {
		t.Fatalf("turn not preserved: got %v want %v", turn2, turn)
	}
	if diff := cmp.Diff(multiset(board), multiset(board2), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("piece multiset mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentityPreservedAcrossNonCapturingReparse(t *testing.T) {
	board, _, err := Decode(InitialFEN)
	if err != nil {
		t.Fatal(err)
	}
	cannon := board.At(1, 7) // red cannon b2 (file 1, red back rows at 7..9, cannon row is rank 7)
	if cannon == nil || cannon.Type != PieceCannon {
		t.Fatalf("expected red cannon at file 1 rank 7, got %+v", cannon)
	}
	originalID := cannon.ID

	board.Relocate(cannon, 4, 7) // cannon slides to e2 (non-capturing)
	fen := Encode(board, Black, 0, 1)

	reparsed, _, err := DecodeWithIdentity(fen, board)
	if err != nil {
		t.Fatal(err)
	}
	moved := reparsed.At(4, 7)
	if moved == nil || moved.Type != PieceCannon {
		t.Fatalf("expected cannon at e2 after reparse, got %+v", moved)
	}
	if moved.ID != originalID {
		t.Fatalf("id churned across non-capturing reparse: got %d want %d", moved.ID, originalID)
	}
}

func TestIdentityUniqueAfterReparse(t *testing.T) {
	board, _, err := Decode(InitialFEN)
	if err != nil {
		t.Fatal(err)
	}
	board.Remove(board.At(1, 7)) // the reparse must give this cannon a fresh id
	reparsed, _, err := DecodeWithIdentity(InitialFEN, board)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range []*Board{board, reparsed} {
		seen := map[int]bool{}
		for _, p := range b.Pieces() {
			if seen[p.ID] {
				t.Fatalf("duplicate id %d", p.ID)
			}
			seen[p.ID] = true
		}
	}
}

func TestDecodeRejectsMalformedFEN(t *testing.T) {
	cases := []string{
		"",
		"only-one-field",
		"toofew/ranks w - - 0 1",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNZ w - - 0 1",
	}
	for _, fen := range cases {
		if _, _, err := Decode(fen); err == nil {
			t.Errorf("Decode(%q) = nil error, want error", fen)
		}
	}
}
