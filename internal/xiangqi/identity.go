package xiangqi

// assignIdentities implements the identity-preserving reparse of spec §4.1:
// each newly parsed piece is matched against the previous board's live
// pieces in three phases, so that FEN reparses preserve piece identity for
// UI animation continuity across non-capturing moves, and churn ids
// minimally across captures.
func assignIdentities(parsed []parsedPiece, prev *Board) *Board {
	board := NewBoard()

	// Pool of previously-live pieces still available to match against;
	// phase 2's nearest-neighbor search filters it by (type, color).
	var pool []*Piece
	usedIDs := make(map[int]bool)
	maxID := 0
	if prev != nil {
		for _, p := range prev.Pieces() {
			pool = append(pool, p)
			usedIDs[p.ID] = true
			if p.ID > maxID {
				maxID = p.ID
			}
		}
	}
	matched := make(map[*Piece]bool, len(pool))

	assignID := func(cardinalIndex int) int {
		claimed := usedIDs[cardinalIndex]
		if !claimed {
			usedIDs[cardinalIndex] = true
			if cardinalIndex > maxID {
				maxID = cardinalIndex
			}
			return cardinalIndex
		}
		maxID++
		for usedIDs[maxID] {
			maxID++
		}
		usedIDs[maxID] = true
		return maxID
	}

	// Phase 1: exact (type, color, file, rank) match.
	remaining := make([]parsedPiece, 0, len(parsed))
	for _, pp := range parsed {
		found := false
		for _, cand := range pool {
			if matched[cand] {
				continue
			}
			if cand.Type == pp.Type && cand.Color == pp.Color && cand.sameSquare(pp.File, pp.Rank) {
				matched[cand] = true
				board.Place(&Piece{ID: cand.ID, Type: pp.Type, Color: pp.Color, File: pp.File, Rank: pp.Rank})
				found = true
				break
			}
		}
		if !found {
			remaining = append(remaining, pp)
		}
	}

	// Phase 2: nearest same-kind match among unmatched prior pieces.
	stillRemaining := make([]parsedPiece, 0, len(remaining))
	for _, pp := range remaining {
		var best *Piece
		bestDist := -1
		for _, cand := range pool {
			if matched[cand] {
				continue
			}
			if cand.Type != pp.Type || cand.Color != pp.Color {
				continue
			}
			dist := abs(cand.File-pp.File) + abs(cand.Rank-pp.Rank)
			if best == nil || dist < bestDist || (dist == bestDist && cand.ID < best.ID) {
				best = cand
				bestDist = dist
			}
		}
		if best != nil {
			matched[best] = true
			board.Place(&Piece{ID: best.ID, Type: pp.Type, Color: pp.Color, File: pp.File, Rank: pp.Rank})
		} else {
			stillRemaining = append(stillRemaining, pp)
		}
	}

	// Phase 3: fresh monotonic id, attempting the piece's cardinal index
	// (its position in parse order) before falling back to max+1.
	for i, pp := range stillRemaining {
		id := assignID(i)
		board.Place(&Piece{ID: id, Type: pp.Type, Color: pp.Color, File: pp.File, Rank: pp.Rank})
	}

	return board
}
