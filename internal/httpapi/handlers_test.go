package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"xiangqi/internal/enginebridge/enginetest"
)

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) StateResponse {
	t.Helper()
	var out StateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (body=%s)", err, rec.Body.String())
	}
	return out
}

func TestNewGameThenMoveRoundTrip(t *testing.T) {
	h := NewHandler(enginetest.New(), 0)

	rec := postJSON(t, h, "/api/new_game", NewGameRequest{})
	if rec.Code != http.StatusOK {
		t.Fatalf("new_game: status %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeState(t, rec)
	if created.Turn != "red" {
		t.Fatalf("expected red to move first, got %q", created.Turn)
	}

	rec = postJSON(t, h, "/api/move", MoveRequest{
		GameID: created.GameID,
		From:   SquareDTO{File: 1, Rank: 7},
		To:     SquareDTO{File: 4, Rank: 7},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("move: status %d, body %s", rec.Code, rec.Body.String())
	}
	after := decodeState(t, rec)
	if after.Turn != "black" {
		t.Fatalf("expected turn to flip to black, got %q", after.Turn)
	}
	if len(after.MoveHistory) != 1 {
		t.Fatalf("expected one move recorded, got %d", len(after.MoveHistory))
	}
}

func TestMoveOnUnknownGameReturnsNotFound(t *testing.T) {
	h := NewHandler(enginetest.New(), 0)
	rec := postJSON(t, h, "/api/move", MoveRequest{GameID: "does-not-exist"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestIllegalMoveReturnsBadRequestAndLeavesGameUntouched(t *testing.T) {
	h := NewHandler(enginetest.New(), 0)
	created := decodeState(t, postJSON(t, h, "/api/new_game", NewGameRequest{}))

	rec := postJSON(t, h, "/api/move", MoveRequest{
		GameID: created.GameID,
		From:   SquareDTO{File: 0, Rank: 9},
		To:     SquareDTO{File: 0, Rank: 0},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an illegal rook move across the whole board, got %d", rec.Code)
	}

	state := decodeState(t, postJSON(t, h, "/api/state", GameIDRequest{GameID: created.GameID}))
	if len(state.MoveHistory) != 0 {
		t.Fatalf("rejected move must not be recorded")
	}
}

func TestHintDoesNotAppearInMoveHistory(t *testing.T) {
	h := NewHandler(enginetest.New(), 0)
	created := decodeState(t, postJSON(t, h, "/api/new_game", NewGameRequest{}))

	rec := postJSON(t, h, "/api/hint", HintRequest{GameID: created.GameID, Difficulty: 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("hint: status %d, body %s", rec.Code, rec.Body.String())
	}
	var hint HintResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &hint); err != nil {
		t.Fatal(err)
	}
	if hint.UCI == "" {
		t.Fatalf("expected a concrete hint move")
	}

	state := decodeState(t, postJSON(t, h, "/api/state", GameIDRequest{GameID: created.GameID}))
	if len(state.MoveHistory) != 0 {
		t.Fatalf("hint must not apply a move")
	}
	if state.LastHint == nil {
		t.Fatalf("state should reflect the stored hint")
	}
}

func TestUndoReturnsPositionToStart(t *testing.T) {
	h := NewHandler(enginetest.New(), 0)
	created := decodeState(t, postJSON(t, h, "/api/new_game", NewGameRequest{}))

	postJSON(t, h, "/api/move", MoveRequest{
		GameID: created.GameID,
		From:   SquareDTO{File: 1, Rank: 7},
		To:     SquareDTO{File: 4, Rank: 7},
	})

	rec := postJSON(t, h, "/api/undo", GameIDRequest{GameID: created.GameID})
	if rec.Code != http.StatusOK {
		t.Fatalf("undo: status %d, body %s", rec.Code, rec.Body.String())
	}
	after := decodeState(t, rec)
	if after.FEN != created.FEN {
		t.Fatalf("undo should restore the exact starting FEN, got %q want %q", after.FEN, created.FEN)
	}
}
