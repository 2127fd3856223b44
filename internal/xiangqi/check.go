package xiangqi

// IsAttacked reports whether (file, rank) is attacked by bySide, per the
// reverse attack scan in spec §4.4 (rook, cannon, horse, pawn, and the
// flying-general rule when the square itself holds a king).
func IsAttacked(b *Board, file, rank int, bySide Side) bool {
	if rookAttacks(b, file, rank, bySide) {
		return true
	}
	if cannonAttacks(b, file, rank, bySide) {
		return true
	}
	if horseAttacks(b, file, rank, bySide) {
		return true
	}
	if pawnAttacks(b, file, rank, bySide) {
		return true
	}
	if flyingGeneralAttacks(b, file, rank, bySide) {
		return true
	}
	return false
}

// IsInCheck reports whether side's king is currently attacked. A side
// whose king has already been captured is not "in check" — the game is
// simply over (spec §3 invariant 4).
func IsInCheck(b *Board, side Side) bool {
	king := b.King(side)
	if king == nil {
		return false
	}
	return IsAttacked(b, king.File, king.Rank, side.Opposite())
}

func rookAttacks(b *Board, file, rank int, bySide Side) bool {
	for _, d := range orthoDirs {
		f, r := file+d[0], rank+d[1]
		for onBoard(f, r) {
			p := b.At(f, r)
			if p != nil {
				return p.Color == bySide && p.Type == PieceRook
			}
			f += d[0]
			r += d[1]
		}
	}
	return false
}

func cannonAttacks(b *Board, file, rank int, bySide Side) bool {
	for _, d := range orthoDirs {
		f, r := file+d[0], rank+d[1]
		// Skip to the first occupied square (the screen).
		for onBoard(f, r) && b.At(f, r) == nil {
			f += d[0]
			r += d[1]
		}
		if !onBoard(f, r) {
			continue
		}
		f += d[0]
		r += d[1]
		for onBoard(f, r) {
			p := b.At(f, r)
			if p != nil {
				if p.Color == bySide && p.Type == PieceCannon {
					return true
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return false
}

func horseAttacks(b *Board, file, rank int, bySide Side) bool {
	// A horse at (hf, hr) attacks (file, rank) via one of the eight
	// day-shaped geometries; the leg to check is adjacent to the HORSE,
	// not to the target square, so we invert horseLegMoves.
	for _, m := range horseLegMoves {
		hf, hr := file-m.DFile, rank-m.DRank
		p := b.At(hf, hr)
		if p == nil || p.Color != bySide || p.Type != PieceHorse {
			continue
		}
		legFile, legRank := hf+m.LegFile, hr+m.LegRank
		if b.At(legFile, legRank) == nil {
			return true
		}
	}
	return false
}

func pawnAttacks(b *Board, file, rank int, bySide Side) bool {
	// A pawn attacks straight toward the opponent, and sideways once it
	// has crossed the river. bySide's forward direction is pawnDir(bySide);
	// the attacking pawn sits one step *behind* (file, rank) along that
	// direction, i.e. at rank - pawnDir(bySide).
	dir := pawnDir(bySide)
	if p := b.At(file, rank-dir); p != nil && p.Color == bySide && p.Type == PiecePawn {
		return true
	}
	for _, df := range [2]int{-1, 1} {
		p := b.At(file+df, rank)
		if p != nil && p.Color == bySide && p.Type == PiecePawn && crossedRiver(bySide, p.Rank) {
			return true
		}
	}
	return false
}

// flyingGeneralAttacks reports whether the opposing king can "fly" down
// the file to (file, rank): only meaningful when (file, rank) holds this
// side's own king and bySide's king shares its file with nothing between.
func flyingGeneralAttacks(b *Board, file, rank int, bySide Side) bool {
	target := b.At(file, rank)
	if target == nil || target.Type != PieceKing || target.Color == bySide {
		return false // the flying-general rule only ever captures a king
	}
	enemyKing := b.King(bySide)
	if enemyKing == nil || enemyKing.File != file {
		return false
	}
	lo, hi := rank, enemyKing.Rank
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if b.At(file, r) != nil {
			return false
		}
	}
	return true
}
