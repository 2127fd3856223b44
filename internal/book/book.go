// Package book implements the weighted opening-book sampler of §6.3: two
// bundled JSON shapes (single-side with vertical reflection for black, and
// dual-side) and count-weighted candidate selection.
package book

import (
	"encoding/json"
	"math/rand"

	"github.com/pkg/errors"

	"xiangqi/internal/xiangqi"
)

// Candidate is one weighted opening move.
type Candidate struct {
	Move  string `json:"move"`
	Count int    `json:"count"`
}

// singleSideDoc is the `{"start": [...]}` shape: candidates for red only.
type singleSideDoc struct {
	Start []Candidate `json:"start"`
}

// dualSideDoc is the `{"red":[...], "black":[...]}` shape.
type dualSideDoc struct {
	Red   []Candidate `json:"red"`
	Black []Candidate `json:"black"`
}

// Book holds the per-side candidate tables once loaded.
type Book struct {
	red   []Candidate
	black []Candidate
}

var ErrEmptyBook = errors.New("book: no candidates available for this side")

// Load parses a bundled opening-book asset. Dual-side is preferred; when
// the document does not carry a "red"/"black" pair, it falls back to the
// single-side shape and derives black's table by vertical reflection.
func Load(data []byte) (*Book, error) {
	var dual dualSideDoc
	if err := json.Unmarshal(data, &dual); err == nil && (len(dual.Red) > 0 || len(dual.Black) > 0) {
		return &Book{red: dual.Red, black: dual.Black}, nil
	}

	var single singleSideDoc
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, errors.Wrap(err, "book: unrecognized opening book document")
	}
	return &Book{red: single.Start, black: reflectAll(single.Start)}, nil
}

// reflectAll mirrors each candidate move vertically (rank r -> 9-r on both
// endpoints) so a red-only table can serve black as well.
func reflectAll(cands []Candidate) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if reflected, ok := reflectMove(c.Move); ok {
			out = append(out, Candidate{Move: reflected, Count: c.Count})
		}
	}
	return out
}

func reflectMove(uci string) (string, bool) {
	ff, fr, tf, tr, ok := xiangqi.ParseUCI(uci)
	if !ok {
		return "", false
	}
	rm := xiangqi.Move{FromFile: ff, FromRank: xiangqi.Ranks - 1 - fr, ToFile: tf, ToRank: xiangqi.Ranks - 1 - tr}
	return rm.UCI(), true
}

// candidatesFor returns the table for side.
func (b *Book) candidatesFor(side xiangqi.Side) []Candidate {
	if side == xiangqi.Black {
		return b.black
	}
	return b.red
}

// Probe performs count-weighted sampling over side's candidate table:
// uniform draw in [0, Σcount), scan accumulating counts. draw must already
// be in that range; callers needing non-deterministic sampling should pass
// rand.Intn(total) themselves so the selection logic stays pure and
// testable (Scenario F requires an exact, seed-independent mapping from
// draw value to selection).
func (b *Book) Probe(side xiangqi.Side, draw int) (string, error) {
	cands := b.candidatesFor(side)
	if len(cands) == 0 {
		return "", ErrEmptyBook
	}
	cumulative := 0
	for _, c := range cands {
		cumulative += c.Count
		if draw < cumulative {
			return c.Move, nil
		}
	}
	return cands[len(cands)-1].Move, nil
}

// Sample draws uniformly from [0, Σcount) using rng and returns the
// selected move via Probe. It is the convenience entry point for callers
// that do not need Scenario F's exact determinism.
func (b *Book) Sample(side xiangqi.Side, rng *rand.Rand) (string, error) {
	cands := b.candidatesFor(side)
	total := 0
	for _, c := range cands {
		total += c.Count
	}
	if total <= 0 {
		return "", ErrEmptyBook
	}
	draw := rng.Intn(total)
	return b.Probe(side, draw)
}
