package httpapi

import (
	"xiangqi/internal/aidriver"
	"xiangqi/internal/controller"
	"xiangqi/internal/enginebridge"
	"xiangqi/internal/session"
	"xiangqi/internal/xiangqi"
)

// SquareDTO is a single board coordinate on the wire.
type SquareDTO struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func squareToDTO(s controller.Square) SquareDTO {
	return SquareDTO{File: s.File, Rank: s.Rank}
}

// MoveDTO is a from/to pair on the wire.
type MoveDTO struct {
	From SquareDTO `json:"from"`
	To   SquareDTO `json:"to"`
}

func moveToDTO(m *controller.Move) *MoveDTO {
	if m == nil {
		return nil
	}
	return &MoveDTO{From: squareToDTO(m.From), To: squareToDTO(m.To)}
}

// PieceDTO is one live piece as presented to a front end.
type PieceDTO struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Color string `json:"color"`
	File  int    `json:"file"`
	Rank  int    `json:"rank"`
}

func piecesToDTO(ps []controller.PieceSnapshot) []PieceDTO {
	out := make([]PieceDTO, len(ps))
	for i, p := range ps {
		out[i] = PieceDTO{ID: p.ID, Type: p.Type.String(), Color: p.Color.String(), File: p.File, Rank: p.Rank}
	}
	return out
}

// StatsDTO mirrors controller.Stats on the wire.
type StatsDTO struct {
	Turn             string `json:"turn"`
	Status           string `json:"status"`
	FullMoveCount    int    `json:"full_move_count"`
	RedTotalMillis   int64  `json:"red_total_millis"`
	BlackTotalMillis int64  `json:"black_total_millis"`
	LastMoveMillis   int64  `json:"last_move_millis"`
}

func statsToDTO(s controller.Stats) StatsDTO {
	return StatsDTO{
		Turn:             s.Turn.String(),
		Status:           s.Status.String(),
		FullMoveCount:    s.FullMoveCount,
		RedTotalMillis:   s.RedTotalMillis,
		BlackTotalMillis: s.BlackTotalMillis,
		LastMoveMillis:   s.LastMoveMillis,
	}
}

// StateResponse is the observable state surface of §6.4, rendered for a
// single hosted game.
type StateResponse struct {
	GameID      string     `json:"game_id"`
	FEN         string     `json:"fen"`
	Turn        string     `json:"turn"`
	Status      string     `json:"status"`
	AIEnabled   bool       `json:"ai_enabled"`
	AILevel     int        `json:"ai_level"`
	SelfPlay    bool       `json:"self_play"`
	Pieces      []PieceDTO `json:"pieces"`
	MoveHistory []string   `json:"move_history"`
	LastMove    *MoveDTO   `json:"last_move,omitempty"`
	LastHint    *MoveDTO   `json:"last_hint,omitempty"`
	Stats       StatsDTO   `json:"stats"`
	Notification string    `json:"notification,omitempty"`
}

func stateResponse(s *session.Session) StateResponse {
	ctrl := s.Controller
	history := ctrl.MoveHistory()
	notation := make([]string, len(history))
	for i, m := range history {
		notation[i] = m.Notation()
	}

	notification := ""
	if n := ctrl.ConsumeNotification(); n != nil {
		notification = string(*n)
	}

	return StateResponse{
		GameID:       s.ID,
		FEN:          ctrl.CurrentFEN(),
		Turn:         ctrl.Turn().String(),
		Status:       ctrl.Status().String(),
		AIEnabled:    ctrl.AIEnabled(),
		AILevel:      ctrl.AILevel(),
		SelfPlay:     s.Driver.SelfPlay(),
		Pieces:       piecesToDTO(ctrl.Pieces()),
		MoveHistory:  notation,
		LastMove:     moveToDTO(ctrl.LastMove()),
		LastHint:     moveToDTO(ctrl.LastHint()),
		Stats:        statsToDTO(ctrl.GetStats()),
		Notification: notification,
	}
}

// NewGameRequest configures a freshly hosted game.
type NewGameRequest struct {
	InitialFEN   string `json:"initial_fen"`
	StartingTurn string `json:"starting_turn"`
	AIEnabled    bool   `json:"ai_enabled"`
	AILevel      int    `json:"ai_level"`
}

func (r NewGameRequest) toOptions(engine aidriver.Engine) controller.Options {
	turn := xiangqi.Red
	if r.StartingTurn == "black" {
		turn = xiangqi.Black
	}
	return controller.Options{
		InitialFEN:   r.InitialFEN,
		StartingTurn: turn,
		AIEnabled:    r.AIEnabled,
		AILevel:      r.AILevel,
		Engine:       engine,
	}
}

// MoveRequest applies one square-to-square move to a hosted game.
type MoveRequest struct {
	GameID string    `json:"game_id"`
	From   SquareDTO `json:"from"`
	To     SquareDTO `json:"to"`
}

// UCIMoveRequest applies a move already encoded in UCI notation, matching
// §6.4's play_uci_move operation, for any client that already speaks UCI.
type UCIMoveRequest struct {
	GameID string `json:"game_id"`
	UCI    string `json:"uci"`
}

// GameIDRequest is the shared shape of every operation that only needs to
// name which hosted game it targets.
type GameIDRequest struct {
	GameID string `json:"game_id"`
}

// ResetRequest optionally re-seeds a hosted game from a specific FEN.
type ResetRequest struct {
	GameID     string `json:"game_id"`
	InitialFEN string `json:"initial_fen"`
}

// HintRequest asks for a hint at a specific engine difficulty.
type HintRequest struct {
	GameID     string `json:"game_id"`
	Difficulty int    `json:"difficulty"`
}

// HintResponse mirrors aidriver.HintResult on the wire.
type HintResponse struct {
	UCI  string `json:"uci,omitempty"`
	Busy bool   `json:"busy"`
	None bool   `json:"none"`
}

// SetAIEnabledRequest implements the set_ai_enabled write-surface operation.
type SetAIEnabledRequest struct {
	GameID  string `json:"game_id"`
	Enabled bool   `json:"enabled"`
}

// SetAILevelRequest implements the set_ai_level write-surface operation.
type SetAILevelRequest struct {
	GameID string `json:"game_id"`
	Level  int    `json:"level"`
}

// ToggleSelfPlayRequest implements the toggle_self_play write-surface
// operation.
type ToggleSelfPlayRequest struct {
	GameID  string `json:"game_id"`
	Enabled bool   `json:"enabled"`
}

// EvaluateResponse carries the engine's static centipawn score.
type EvaluateResponse struct {
	CentipawnScore int `json:"centipawn_score"`
}

// AnalyzeRequest asks for a bounded search from the current position.
type AnalyzeRequest struct {
	GameID      string `json:"game_id"`
	Depth       int    `json:"depth"`
	TimeLimitMs int    `json:"time_limit_ms"`
}

// AnalyzeResponse mirrors enginebridge.Analysis on the wire.
type AnalyzeResponse struct {
	BestMove string   `json:"best_move"`
	Ponder   string   `json:"ponder,omitempty"`
	ScoreCP  int      `json:"score_cp"`
	Depth    int      `json:"depth"`
	Nodes    int64    `json:"nodes"`
	NPS      int64    `json:"nps"`
	TimeMs   int64    `json:"time_ms"`
	PV       []string `json:"pv"`
}

func analyzeToDTO(a enginebridge.Analysis) AnalyzeResponse {
	return AnalyzeResponse{
		BestMove: a.BestMove,
		Ponder:   a.Ponder,
		ScoreCP:  a.ScoreCP,
		Depth:    a.Depth,
		Nodes:    a.Nodes,
		NPS:      a.NPS,
		TimeMs:   a.TimeMs,
		PV:       a.PV,
	}
}

// ErrorResponse is the uniform failure shape for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
