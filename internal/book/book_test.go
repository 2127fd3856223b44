package book

import (
	"testing"

	"xiangqi/internal/xiangqi"
)

func TestScenarioF_WeightedSelectionDeterminism(t *testing.T) {
	b := &Book{red: []Candidate{{Move: "h2e2", Count: 3}, {Move: "b2e2", Count: 1}}}

	got, err := b.Probe(xiangqi.Red, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != "h2e2" {
		t.Fatalf("draw=2 should select h2e2 (cumulative [0,3) covers it), got %q", got)
	}

	got, err = b.Probe(xiangqi.Red, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != "b2e2" {
		t.Fatalf("draw=3 should select b2e2 (cumulative [3,4)), got %q", got)
	}
}

func TestLoadPrefersDualSideShape(t *testing.T) {
	data := []byte(`{"red":[{"move":"h2e2","count":1}],"black":[{"move":"h7e7","count":1}]}`)
	b, err := Load(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.red) != 1 || b.red[0].Move != "h2e2" {
		t.Fatalf("unexpected red table: %+v", b.red)
	}
	if len(b.black) != 1 || b.black[0].Move != "h7e7" {
		t.Fatalf("unexpected black table: %+v", b.black)
	}
}

func TestLoadFallsBackToSingleSideWithReflection(t *testing.T) {
	data := []byte(`{"start":[{"move":"b2e2","count":5}]}`)
	b, err := Load(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.red) != 1 || b.red[0].Move != "b2e2" {
		t.Fatalf("unexpected red table: %+v", b.red)
	}
	if len(b.black) != 1 {
		t.Fatalf("expected one reflected black candidate, got %+v", b.black)
	}
	// b2e2 = (1,7)->(4,7); vertical reflection maps rank r -> 9-r, so
	// (1,7)->(4,7) becomes (1,2)->(4,2), i.e. UCI "b7e7".
	if b.black[0].Move != "b7e7" {
		t.Fatalf("expected reflected move b7e7, got %q", b.black[0].Move)
	}
}

func TestProbeEmptyBookErrors(t *testing.T) {
	b := &Book{}
	if _, err := b.Probe(xiangqi.Red, 0); err != ErrEmptyBook {
		t.Fatalf("expected ErrEmptyBook, got %v", err)
	}
}
