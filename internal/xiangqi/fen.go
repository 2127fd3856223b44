package xiangqi

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ErrInvalidFEN is returned by Decode when the position field cannot be
// parsed. Wrapped with errors.WithMessage to carry the offending detail.
var ErrInvalidFEN = errors.New("invalid FEN")

// InitialFEN is the standard Xiangqi starting position (spec §6.1).
const InitialFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"

var letterToPieceType = map[byte]PieceType{
	'k': PieceKing,
	'a': PieceAdvisor,
	'b': PieceElephant, // 'B'/'b' per spec §4.1 ("elephant(bishop)")
	'n': PieceHorse,
	'r': PieceRook,
	'c': PieceCannon,
	'p': PiecePawn,
}

var pieceTypeToLetter = map[PieceType]byte{
	PieceKing:     'k',
	PieceAdvisor:  'a',
	PieceElephant: 'b',
	PieceHorse:    'n',
	PieceRook:     'r',
	PieceCannon:   'c',
	PiecePawn:     'p',
}

// parsedPiece is a (type, color, file, rank) tuple decoded from FEN before
// identity assignment.
type parsedPiece struct {
	Type       PieceType
	Color      Side
	File, Rank int
}

// decodePositionField parses only the rank-segment part of a FEN string.
func decodePositionField(field string) ([]parsedPiece, error) {
	rows := strings.Split(field, "/")
	if len(rows) != Ranks {
		return nil, errors.WithMessage(ErrInvalidFEN, "expected 10 rank segments")
	}
	var out []parsedPiece
	for rank, row := range rows {
		file := 0
		for i := 0; i < len(row); i++ {
			ch := row[i]
			if ch >= '1' && ch <= '9' {
				file += int(ch - '0')
				continue
			}
			if file >= Files {
				return nil, errors.WithMessagef(ErrInvalidFEN, "rank %d overflows board width", rank)
			}
			lower := byte(unicode.ToLower(rune(ch)))
			pt, ok := letterToPieceType[lower]
			if !ok {
				return nil, errors.WithMessagef(ErrInvalidFEN, "unknown piece letter %q", ch)
			}
			color := Black
			if unicode.IsUpper(rune(ch)) {
				color = Red
			}
			out = append(out, parsedPiece{Type: pt, Color: color, File: file, Rank: rank})
			file++
		}
		if file != Files {
			return nil, errors.WithMessagef(ErrInvalidFEN, "rank %d has width %d, want %d", rank, file, Files)
		}
	}
	return out, nil
}

// EncodePositionField serializes a board's position field only (no turn or
// trailing fields).
func EncodePositionField(b *Board) string {
	var sb strings.Builder
	for rank := 0; rank < Ranks; rank++ {
		if rank > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for file := 0; file < Files; file++ {
			p := b.At(file, rank)
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := pieceTypeToLetter[p.Type]
			if p.Color == Red {
				letter = byte(unicode.ToUpper(rune(letter)))
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

// Encode serializes the full FEN: position, turn, and the four fields the
// core tracks but does not semantically enforce (spec §6.1).
func Encode(b *Board, turn Side, halfmove, fullmove int) string {
	turnChar := byte('w')
	if turn == Black {
		turnChar = 'b'
	}
	return EncodePositionField(b) + " " + string(turnChar) + " - - " +
		strconv.Itoa(halfmove) + " " + strconv.Itoa(fullmove)
}

// Decode parses a full FEN string into a fresh Board with freshly assigned
// piece ids (no prior board to preserve identity against).
func Decode(fen string) (*Board, Side, error) {
	return DecodeWithIdentity(fen, nil)
}

// DecodeWithIdentity parses fen into a new Board, reusing piece ids from
// prev per the two-phase match in spec §4.1: exact-square match first,
// then nearest-same-kind by Manhattan distance, then a fresh monotonic id.
func DecodeWithIdentity(fen string, prev *Board) (*Board, Side, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, NoSide, errors.WithMessage(ErrInvalidFEN, "expected at least position and turn fields")
	}
	parsed, err := decodePositionField(fields[0])
	if err != nil {
		return nil, NoSide, err
	}
	var turn Side
	switch fields[1] {
	case "w":
		turn = Red
	case "b":
		turn = Black
	default:
		return nil, NoSide, errors.WithMessagef(ErrInvalidFEN, "unknown turn field %q", fields[1])
	}

	board := assignIdentities(parsed, prev)
	return board, turn, nil
}
