package xiangqi

import "fmt"

// Move is a single from/to square pair, plus whatever it captured (nil for
// a quiet move). Coordinates are internal (file, rank); use UCI() for the
// wire notation described in spec §3/§6.2.
type Move struct {
	FromFile, FromRank int
	ToFile, ToRank     int
	Captured           *Piece
}

// UCI renders the move as "f<fr>t<tr>": file letters 'a'..'i', UCI rank
// increasing upward from red's baseline (UCI rank = 9 - internal rank).
func (m Move) UCI() string {
	return fmt.Sprintf("%c%d%c%d",
		'a'+rune(m.FromFile), 9-m.FromRank,
		'a'+rune(m.ToFile), 9-m.ToRank)
}

// ParseUCI decodes a 4-character UCI move string into board coordinates.
func ParseUCI(s string) (fromFile, fromRank, toFile, toRank int, ok bool) {
	if len(s) != 4 {
		return 0, 0, 0, 0, false
	}
	ff := int(s[0] - 'a')
	fr := int(s[1] - '0')
	tf := int(s[2] - 'a')
	tr := int(s[3] - '0')
	if ff < 0 || ff >= Files || tf < 0 || tf >= Files {
		return 0, 0, 0, 0, false
	}
	if fr < 0 || fr > 9 || tr < 0 || tr > 9 {
		return 0, 0, 0, 0, false
	}
	return ff, 9 - fr, tf, 9 - tr, true
}
