package enginebridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// searchResult collects the "info" telemetry and terminal "bestmove" line
// of one "go" search.
type searchResult struct {
	BestMove string
	Ponder   string
	ScoreCP  int
	Depth    int
	Nodes    int64
	NPS      int64
	TimeMs   int64
	PV       []string
}

// transport owns the engine subprocess and speaks the real line-oriented
// UCI protocol over its stdin/stdout: "uci", "isready", "ucinewgame",
// "position fen ...", "go depth N" / "go movetime N", "stop" and "quit"
// out; "id ...", "uciok", "readyok", "info ...", and
// "bestmove <uci> [ponder <uci>]" back. UCI is a single sequential
// conversation, so cmdMu ensures only one command drives the reply stream
// at a time; writeMu is separate so stop can interrupt a "go" that is
// still being read.
type transport struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser

	writeMu sync.Mutex
	cmdMu   sync.Mutex

	stateMu  sync.Mutex
	lines    chan string
	closed   bool
	identity string
}

func startTransport(name string, args ...string) (*transport, error) {
	cmd := exec.Command(name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "enginebridge: stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "enginebridge: stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "enginebridge: start engine process")
	}

	t := &transport{
		cmd:    cmd,
		stdin:  stdin,
		stdout: stdout,
		lines:  make(chan string, 64),
	}
	go t.readLoop()
	return t, nil
}

// readLoop is the sole reader of the engine's stdout; every non-empty line
// is handed to whichever exchange currently holds cmdMu.
func (t *transport) readLoop() {
	scanner := bufio.NewScanner(t.stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t.lines <- line
	}
	close(t.lines)
}

func (t *transport) writeLine(s string) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_, err := io.WriteString(t.stdin, s+"\n")
	return err
}

func (t *transport) isClosed() bool {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()
	return t.closed
}

func (t *transport) markClosed() {
	t.stateMu.Lock()
	t.closed = true
	t.stateMu.Unlock()
}

// exchange writes send, then feeds every subsequent line to onLine until it
// reports done, ctx is done, or the engine's stdout closes. UCI has no
// correlation ids, so a caller whose ctx fires mid-exchange cannot tell
// which future line still belongs to it — the transport is poisoned in
// that case and every later exchange returns ErrUnreachable. Bridge.Initialize
// does not replace a poisoned transport, since the bridge state stays ready.
func (t *transport) exchange(ctx context.Context, send []string, onLine func(line string) (done bool, err error)) error {
	t.cmdMu.Lock()
	defer t.cmdMu.Unlock()

	if t.isClosed() {
		return ErrUnreachable
	}

	for _, line := range send {
		if err := t.writeLine(line); err != nil {
			return errors.Wrap(err, "enginebridge: write command")
		}
	}

	for {
		select {
		case <-ctx.Done():
			t.markClosed()
			return ctx.Err()
		case line, ok := <-t.lines:
			if !ok {
				t.markClosed()
				return ErrUnreachable
			}
			done, err := onLine(line)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// handshake performs "uci"/"uciok" then "isready"/"readyok", capturing the
// engine's own "id name"/"id author" lines along the way.
func (t *transport) handshake(ctx context.Context) error {
	var idParts []string
	err := t.exchange(ctx, []string{"uci"}, func(line string) (bool, error) {
		if strings.HasPrefix(line, "id ") {
			idParts = append(idParts, strings.TrimPrefix(line, "id "))
		}
		return line == "uciok", nil
	})
	if err != nil {
		return err
	}
	t.stateMu.Lock()
	t.identity = strings.Join(idParts, ", ")
	t.stateMu.Unlock()

	return t.exchange(ctx, []string{"isready"}, func(line string) (bool, error) {
		return line == "readyok", nil
	})
}

// configure applies threading/hash/skill settings via "setoption", then
// syncs on "isready" the way real engines guarantee prior options landed
// before the next search.
func (t *transport) configure(ctx context.Context, cfg Config) error {
	send := []string{
		fmt.Sprintf("setoption name Threads value %d", cfg.Threads),
		fmt.Sprintf("setoption name Hash value %d", cfg.HashMB),
		fmt.Sprintf("setoption name Skill Level value %d", cfg.SkillLevel),
		"isready",
	}
	return t.exchange(ctx, send, func(line string) (bool, error) {
		return line == "readyok", nil
	})
}

// setPosition tells the engine which FEN the next "go" searches from.
func (t *transport) setPosition(ctx context.Context, fen string) error {
	send := []string{fmt.Sprintf("position fen %s", fen), "isready"}
	return t.exchange(ctx, send, func(line string) (bool, error) {
		return line == "readyok", nil
	})
}

// newGame sends "ucinewgame", the UCI signal that engine-internal state
// (hash tables, history heuristics) should be cleared between games.
func (t *transport) newGame(ctx context.Context) error {
	send := []string{"ucinewgame", "isready"}
	return t.exchange(ctx, send, func(line string) (bool, error) {
		return line == "readyok", nil
	})
}

// search issues goLine ("go depth N" or "go movetime N") and collects every
// "info" line's telemetry until "bestmove" ends the search.
func (t *transport) search(ctx context.Context, goLine string) (searchResult, error) {
	var res searchResult
	err := t.exchange(ctx, []string{goLine}, func(line string) (bool, error) {
		switch {
		case strings.HasPrefix(line, "info "):
			parseInfoLine(strings.TrimPrefix(line, "info "), &res)
		case strings.HasPrefix(line, "bestmove"):
			res.BestMove, res.Ponder = parseBestMoveLine(line)
			return true, nil
		}
		return false, nil
	})
	return res, err
}

// stop asks the engine to cut short whatever "go" is in flight. It does
// not wait for a reply: the pending search's own exchange call is the one
// that will observe the resulting "bestmove" line.
func (t *transport) stop() error {
	if t.isClosed() {
		return ErrUnreachable
	}
	return t.writeLine("stop")
}

// info returns the identity string captured during handshake.
func (t *transport) info() string {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()
	return t.identity
}

func (t *transport) close() error {
	t.writeLine("quit")
	t.markClosed()
	t.stdin.Close()
	t.stdout.Close()
	return t.cmd.Wait()
}

// parseInfoLine folds one "info ..." line's known fields into res. A "pv"
// token always runs to the end of the line, matching real UCI info lines.
func parseInfoLine(fields string, res *searchResult) {
	f := strings.Fields(fields)
	for i := 0; i < len(f); i++ {
		switch f[i] {
		case "depth":
			if i+1 < len(f) {
				res.Depth, _ = strconv.Atoi(f[i+1])
			}
		case "score":
			if i+2 < len(f) && f[i+1] == "cp" {
				res.ScoreCP, _ = strconv.Atoi(f[i+2])
			}
		case "nodes":
			if i+1 < len(f) {
				res.Nodes, _ = strconv.ParseInt(f[i+1], 10, 64)
			}
		case "nps":
			if i+1 < len(f) {
				res.NPS, _ = strconv.ParseInt(f[i+1], 10, 64)
			}
		case "time":
			if i+1 < len(f) {
				res.TimeMs, _ = strconv.ParseInt(f[i+1], 10, 64)
			}
		case "pv":
			res.PV = append([]string(nil), f[i+1:]...)
			return
		}
	}
}

// parseBestMoveLine reads "bestmove <uci> [ponder <uci>]". A null move is
// reported as "0000", the real UCI convention for "no legal move".
func parseBestMoveLine(line string) (move, ponder string) {
	f := strings.Fields(line)
	if len(f) < 2 {
		return "", ""
	}
	move = f[1]
	if move == "0000" {
		move = "(none)"
	}
	for i := 2; i < len(f)-1; i++ {
		if f[i] == "ponder" {
			ponder = f[i+1]
		}
	}
	return move, ponder
}
