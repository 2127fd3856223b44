package xiangqi

// orthogonal step directions, (dFile, dRank).
var orthoDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// diagonal step directions.
var diagDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// horseLegMoves lists the eight "day"-shaped knight targets together with
// the orthogonal leg square that must be empty for that target to be
// reachable (spec §4.2 "horse leg").
var horseLegMoves = [8]struct {
	DFile, DRank int
	LegFile, LegRank int
}{
	{1, 2, 0, 1},
	{-1, 2, 0, 1},
	{1, -2, 0, -1},
	{-1, -2, 0, -1},
	{2, 1, 1, 0},
	{2, -1, 1, 0},
	{-2, 1, -1, 0},
	{-2, -1, -1, 0},
}
