package xiangqi

// GenerateMoves enumerates the pseudo-legal targets for p on b, per the
// per-piece rules in spec §4.2. It does not filter moves that would leave
// the mover's own king in check — spec §9 reserves that to the engine. It
// backs UI hinting and, through GenerateAllMoves, the in-process
// legal_moves/checkmate/stalemate answers; the local-rule fallback of
// move validation uses Validate instead.
func GenerateMoves(b *Board, p *Piece) []Move {
	switch p.Type {
	case PieceKing:
		return genKingMoves(b, p)
	case PieceAdvisor:
		return genAdvisorMoves(b, p)
	case PieceElephant:
		return genElephantMoves(b, p)
	case PieceHorse:
		return genHorseMoves(b, p)
	case PieceRook:
		return genRookMoves(b, p)
	case PieceCannon:
		return genCannonMoves(b, p)
	case PiecePawn:
		return genPawnMoves(b, p)
	default:
		return nil
	}
}

// GenerateAllMoves enumerates pseudo-legal moves for every live piece of
// side, visiting pieces in square order (rank by rank, file by file) so
// the result is the same for the same position.
func GenerateAllMoves(b *Board, side Side) []Move {
	var out []Move
	for _, p := range b.squares {
		if p == nil || p.Color != side {
			continue
		}
		out = append(out, GenerateMoves(b, p)...)
	}
	return out
}

func addTargetIfNotOwn(b *Board, p *Piece, file, rank int, out *[]Move) {
	if !onBoard(file, rank) {
		return
	}
	dst := b.At(file, rank)
	if dst != nil && dst.Color == p.Color {
		return
	}
	*out = append(*out, Move{FromFile: p.File, FromRank: p.Rank, ToFile: file, ToRank: rank, Captured: dst})
}

func genKingMoves(b *Board, p *Piece) []Move {
	var out []Move
	for _, d := range orthoDirs {
		f, r := p.File+d[0], p.Rank+d[1]
		if !inPalace(p.Color, f, r) {
			continue
		}
		addTargetIfNotOwn(b, p, f, r, &out)
	}
	return out
}

func genAdvisorMoves(b *Board, p *Piece) []Move {
	var out []Move
	for _, d := range diagDirs {
		f, r := p.File+d[0], p.Rank+d[1]
		if !inPalace(p.Color, f, r) {
			continue
		}
		addTargetIfNotOwn(b, p, f, r, &out)
	}
	return out
}

func genElephantMoves(b *Board, p *Piece) []Move {
	var out []Move
	for _, d := range diagDirs {
		eyeFile, eyeRank := p.File+d[0], p.Rank+d[1]
		f, r := p.File+2*d[0], p.Rank+2*d[1]
		if !onBoard(f, r) {
			continue
		}
		if crossedRiver(p.Color, r) {
			continue // elephant may never cross the river
		}
		if b.At(eyeFile, eyeRank) != nil {
			continue // blocked at the elephant eye
		}
		addTargetIfNotOwn(b, p, f, r, &out)
	}
	return out
}

func genHorseMoves(b *Board, p *Piece) []Move {
	var out []Move
	for _, m := range horseLegMoves {
		legFile, legRank := p.File+m.LegFile, p.Rank+m.LegRank
		if b.At(legFile, legRank) != nil {
			continue // horse leg blocked
		}
		f, r := p.File+m.DFile, p.Rank+m.DRank
		addTargetIfNotOwn(b, p, f, r, &out)
	}
	return out
}

func genRookMoves(b *Board, p *Piece) []Move {
	var out []Move
	for _, d := range orthoDirs {
		f, r := p.File+d[0], p.Rank+d[1]
		for onBoard(f, r) {
			dst := b.At(f, r)
			if dst == nil {
				out = append(out, Move{FromFile: p.File, FromRank: p.Rank, ToFile: f, ToRank: r})
			} else {
				if dst.Color != p.Color {
					out = append(out, Move{FromFile: p.File, FromRank: p.Rank, ToFile: f, ToRank: r, Captured: dst})
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return out
}

func genCannonMoves(b *Board, p *Piece) []Move {
	var out []Move
	for _, d := range orthoDirs {
		f, r := p.File+d[0], p.Rank+d[1]
		// Travel phase: empty squares only, until the screen.
		for onBoard(f, r) && b.At(f, r) == nil {
			out = append(out, Move{FromFile: p.File, FromRank: p.Rank, ToFile: f, ToRank: r})
			f += d[0]
			r += d[1]
		}
		if !onBoard(f, r) {
			continue
		}
		// f,r now holds the screen piece; look past it for a capture.
		f += d[0]
		r += d[1]
		for onBoard(f, r) {
			dst := b.At(f, r)
			if dst != nil {
				if dst.Color != p.Color {
					out = append(out, Move{FromFile: p.File, FromRank: p.Rank, ToFile: f, ToRank: r, Captured: dst})
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return out
}

func genPawnMoves(b *Board, p *Piece) []Move {
	var out []Move
	dir := pawnDir(p.Color)
	// Forward step is always available (pre- and post-river).
	addTargetIfNotOwn(b, p, p.File, p.Rank+dir, &out)
	if crossedRiver(p.Color, p.Rank) {
		addTargetIfNotOwn(b, p, p.File-1, p.Rank, &out)
		addTargetIfNotOwn(b, p, p.File+1, p.Rank, &out)
	}
	return out
}
