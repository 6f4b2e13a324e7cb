// Package adapter serves the competition line protocol: INIT, STATE, and GO
// requests on an input stream, one MOVE response per GO on the output
// stream. Diagnostics go to a separate channel so the protocol output stays
// machine-readable. A malformed request produces a single ERROR line and a
// non-zero exit status; internal search failures are resolved silently by a
// fallback agent.
package adapter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"einstein/agent"
	"einstein/game"
	"einstein/wtn"
)

// InputError marks a protocol violation: a malformed request or a request
// arriving out of order.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

func inputErrorf(format string, args ...any) *InputError {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}

// Config assembles an Adapter.
type Config struct {
	// Agent is the primary mover; Fallback substitutes when the primary
	// errors, misses its deadline, or proposes an illegal move.
	Agent    agent.Agent
	Fallback agent.Agent
	// Budget is the per-GO deadline handed to the primary agent.
	Budget time.Duration
	// SaveWTN, when set, persists a WTN record after every move.
	SaveWTN string
}

// Adapter consumes protocol lines from in and answers on out.
type Adapter struct {
	agent    agent.Agent
	fallback agent.Agent
	budget   time.Duration

	in  io.Reader
	out io.Writer
	log zerolog.Logger

	side    game.Player
	turn    int
	layout  string
	pending *pendingRequest

	savePath   string
	record     *wtn.Record
	recordLive bool
}

type pendingRequest struct {
	state game.State
	die   int
}

// New builds an adapter. diag receives human-readable traces and must be a
// different stream than out.
func New(cfg Config, in io.Reader, out, diag io.Writer) *Adapter {
	a := &Adapter{
		agent:      cfg.Agent,
		fallback:   cfg.Fallback,
		budget:     cfg.Budget,
		in:         in,
		out:        out,
		log:        zerolog.New(diag).With().Timestamp().Logger(),
		side:       game.Red,
		savePath:   cfg.SaveWTN,
		recordLive: cfg.SaveWTN != "",
	}
	if a.agent == nil {
		a.agent = agent.NewExpecti()
	}
	if a.fallback == nil {
		a.fallback = agent.NewHeuristic(0)
	}
	if a.budget <= 0 {
		a.budget = 50 * time.Millisecond
	}
	return a
}

// Run processes requests until the input closes. It returns the process
// exit code: zero on clean end of input, non-zero after an ERROR response.
func (a *Adapter) Run() int {
	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := a.handleLine(line); err != nil {
			return a.emitError(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return a.emitError(fmt.Errorf("reading input: %w", err))
	}
	return 0
}

func (a *Adapter) handleLine(line string) error {
	tokens := strings.Fields(line)
	switch strings.ToUpper(tokens[0]) {
	case "INIT":
		return a.handleInit(tokens)
	case "STATE":
		return a.handleState(tokens)
	case "GO":
		return a.handleGo()
	}
	return inputErrorf("unknown command %q", tokens[0])
}

func (a *Adapter) handleInit(tokens []string) error {
	if len(tokens) < 2 {
		return inputErrorf("INIT requires a side token")
	}
	side, err := game.ParsePlayer(tokens[1])
	if err != nil {
		return inputErrorf("INIT: %v", err)
	}
	a.side = side
	if len(tokens) > 2 {
		a.layout = tokens[2]
	}
	a.log.Info().Stringer("side", side).Str("layout", a.layout).Msg("initialized")
	return nil
}

func (a *Adapter) handleState(tokens []string) error {
	if len(tokens) < 4 {
		return inputErrorf("STATE requires turn number, die roll, and board CSV")
	}
	turn, err := strconv.Atoi(tokens[1])
	if err != nil || turn < 1 {
		return inputErrorf("invalid turn number %q", tokens[1])
	}
	die, err := strconv.Atoi(tokens[2])
	if err != nil {
		return inputErrorf("invalid die roll %q", tokens[2])
	}
	if die < 1 || die > 6 {
		return inputErrorf("die roll must be between 1 and 6, got %d", die)
	}
	board, err := parseBoardCSV(tokens[3])
	if err != nil {
		return err
	}
	state, err := game.FromBoard(board, a.side)
	if err != nil {
		return inputErrorf("invalid board: %v", err)
	}

	a.turn = turn
	a.pending = &pendingRequest{state: state, die: die}
	a.initRecord(state)
	return nil
}

func (a *Adapter) handleGo() error {
	if a.pending == nil {
		return inputErrorf("GO received before STATE")
	}
	state, die := a.pending.state, a.pending.die

	legal := game.LegalMoves(state, die)
	if len(legal) == 0 {
		return inputErrorf("no legal moves available")
	}

	move, err := a.primaryMove(state, die)
	if err != nil || !game.IsLegal(state, die, move) {
		reason := "illegal move"
		if err != nil {
			reason = err.Error()
		}
		a.log.Warn().Str("reason", reason).Msg("falling back to secondary agent")
		move, err = a.fallback.ChooseMove(state, die, a.budget)
		if err != nil {
			return fmt.Errorf("fallback agent failed: %w", err)
		}
		if !game.IsLegal(state, die, move) {
			return fmt.Errorf("fallback agent produced illegal move %s", move)
		}
	}

	a.log.Info().
		Int("turn", a.turn).
		Int("die", die).
		Stringer("move", move).
		Msg("responding")
	a.recordMove(die, move)

	fmt.Fprintf(a.out, "MOVE %d %d %d\n", move.PieceID, move.To.Row, move.To.Col)
	return nil
}

// guardGrace pads the hard deadline so a cooperative agent returning right
// at its budget is not cut off.
const guardGrace = 50 * time.Millisecond

var errBudgetExceeded = errors.New("primary agent exceeded its budget")

// primaryMove asks the primary agent for a move under a hard wall-clock
// guard. The agent's own deadline handling is cooperative; a stalled agent
// must not stall the protocol, so on expiry the caller falls back.
func (a *Adapter) primaryMove(state game.State, die int) (game.Move, error) {
	type answer struct {
		move game.Move
		err  error
	}
	answers := make(chan answer, 1)
	go func() {
		m, err := a.agent.ChooseMove(state, die, a.budget)
		answers <- answer{move: m, err: err}
	}()

	guard := time.NewTimer(a.budget + guardGrace)
	defer guard.Stop()
	select {
	case r := <-answers:
		return r.move, r.err
	case <-guard.C:
		return game.Move{}, errBudgetExceeded
	}
}

func (a *Adapter) emitError(err error) int {
	a.log.Error().Err(err).Msg("terminating")
	fmt.Fprintf(a.out, "ERROR %s\n", err.Error())
	return 1
}

func parseBoardCSV(csv string) ([game.BoardSize][game.BoardSize]int8, error) {
	var board [game.BoardSize][game.BoardSize]int8
	parts := strings.Split(csv, ",")
	if len(parts) != game.BoardSize*game.BoardSize {
		return board, inputErrorf("board must contain %d comma-separated integers", game.BoardSize*game.BoardSize)
	}
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return board, inputErrorf("board entry %q is not an integer", part)
		}
		if v < -6 || v > 6 {
			return board, inputErrorf("piece ids must be within [-6,6], got %d", v)
		}
		board[i/game.BoardSize][i%game.BoardSize] = int8(v)
	}
	return board, nil
}

// initRecord starts a WTN record from the first STATE, provided it is an
// opening position. Recording is disabled, with a trace, if it is not.
func (a *Adapter) initRecord(state game.State) {
	if !a.recordLive || a.record != nil {
		return
	}
	redOrder, errRed := deriveArrangement(state, game.Red)
	blueOrder, errBlue := deriveArrangement(state, game.Blue)
	if errRed != nil || errBlue != nil {
		a.log.Warn().Msg("state is not an opening position, WTN capture disabled")
		a.recordLive = false
		return
	}
	a.record = &wtn.Record{
		Comments:  []string{fmt.Sprintf("# adapter save (side=%s budget=%s)", a.side, a.budget)},
		RedOrder:  redOrder,
		BlueOrder: blueOrder,
	}
	a.persistRecord()
}

func (a *Adapter) recordMove(die int, m game.Move) {
	if !a.recordLive || a.record == nil {
		return
	}
	if err := a.record.AddMove(die, m); err != nil {
		a.log.Warn().Err(err).Msg("move not encodable, disabling WTN capture")
		a.recordLive = false
		return
	}
	a.persistRecord()
}

func (a *Adapter) persistRecord() {
	if err := os.WriteFile(a.savePath, []byte(a.record.String()), 0o644); err != nil {
		a.log.Warn().Err(err).Msg("WTN save failed, disabling capture")
		a.recordLive = false
	}
}

// deriveArrangement recovers a side's opening arrangement from a board where
// all twelve pieces still occupy start cells.
func deriveArrangement(state game.State, p game.Player) (game.Arrangement, error) {
	var arr game.Arrangement
	for i, cell := range game.StartCells(p) {
		occupant := state.Board[cell.Row][cell.Col]
		if p == game.Red && occupant > 0 {
			arr[i] = int(occupant)
		} else if p == game.Blue && occupant < 0 {
			arr[i] = int(-occupant)
		} else {
			return game.Arrangement{}, fmt.Errorf("start cell %s not held by %s", cell, p)
		}
	}
	if err := arr.Validate(); err != nil {
		return game.Arrangement{}, err
	}
	return arr, nil
}
