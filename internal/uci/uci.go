// Package uci drives the engine over a subset of the Universal Chess
// Interface line protocol.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/engine"
	"github.com/hailam/negachess/internal/storage"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position board.Position
	store    *storage.Storage // optional

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// CPU profiling
	profileFile *os.File
}

// Option configures a UCI handler.
type Option func(*UCI)

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(u *UCI) {
		u.in = in
		u.out = out
		u.errOut = errOut
	}
}

// WithStorage persists settings and search statistics and caches perft
// counts in store.
func WithStorage(store *storage.Storage) Option {
	return func(u *UCI) {
		u.store = store
	}
}

// New creates a new UCI protocol handler.
func New(eng *engine.Engine, opts ...Option) *UCI {
	u := &UCI{
		engine:   eng,
		position: board.MustParseFEN(board.StartFEN),
		in:       os.Stdin,
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Position returns the current position.
func (u *UCI) Position() board.Position {
	return u.position
}

// Run reads commands until "quit" or end of input.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			// Searches run to completion before the next command is read.
		case "quit":
			u.handleQuit()
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.println(u.position.String())
		case "eval":
			u.handleEval()
		case "perft":
			u.handlePerft(args)
		default:
			u.infoString("Unknown command: %s", cmd)
		}
	}
	u.stopProfile()
	return scanner.Err()
}

func (u *UCI) println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

func (u *UCI) printf(format string, a ...any) {
	fmt.Fprintf(u.out, format, a...)
}

// infoString writes a diagnostic to the error stream.
func (u *UCI) infoString(format string, a ...any) {
	fmt.Fprintf(u.errOut, "info string "+format+"\n", a...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name NegaChess")
	u.println("id author NegaChess Team")
	u.println()
	u.printf("option name Depth type spin default 0 min 0 max %d\n", engine.MaxPly-1)
	u.println("option name Difficulty type combo default medium var easy var medium var hard")
	u.println("option name CPUProfile type string default <empty>")
	u.println("uciok")
}

// handleNewGame resets the position for a new game.
func (u *UCI) handleNewGame() {
	u.position = board.MustParseFEN(board.StartFEN)
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// A malformed FEN or illegal move leaves the previous position in place.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos board.Position
	switch args[0] {
	case "startpos":
		pos = board.MustParseFEN(board.StartFEN)
	case "fen":
		var err error
		pos, err = board.ParseFENLenient(strings.Join(args[1:movesAt], " "))
		if err != nil {
			u.infoString("Invalid FEN: %v", err)
			return
		}
	default:
		u.infoString("Invalid position command: %s", strings.Join(args, " "))
		return
	}

	if movesAt < len(args) {
		for _, moveStr := range args[movesAt+1:] {
			m, err := board.ParseMove(moveStr, pos)
			if err != nil {
				u.infoString("Invalid move: %s", moveStr)
				return
			}
			pos = pos.ApplyMove(m)
		}
	}
	u.position = pos
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth int
	Perft int
}

// parseGoOptions parses "go" command arguments. Clock and node limits are
// accepted and ignored; depth is the only search limit.
func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "perft":
			if i+1 < len(args) {
				opts.Perft, _ = strconv.Atoi(args[i+1])
				i++
			}
		}
	}
	return opts
}

// handleGo runs a fixed-depth search and prints the best move.
func (u *UCI) handleGo(args []string) {
	opts := parseGoOptions(args)
	if opts.Perft > 0 {
		u.runPerft(opts.Perft)
		return
	}

	depth := opts.Depth
	if depth <= 0 {
		depth = u.engine.Depth()
	}

	u.engine.OnInfo = u.sendInfo
	defer func() { u.engine.OnInfo = nil }()

	start := time.Now()
	res := u.engine.SearchDepth(u.position, depth)
	elapsed := time.Since(start)

	if u.store != nil {
		if err := u.store.RecordSearch(depth, res.Nodes+res.QNodes, elapsed); err != nil {
			u.infoString("Failed to record search: %v", err)
		}
	}

	u.printf("bestmove %s\n", bestOrFallback(u.position, res.Move))
}

// bestOrFallback returns m, or the first legal move when the search gave no
// move in a position that still has one. "0000" is only sent when the side
// to move has no legal moves.
func bestOrFallback(pos board.Position, m board.Move) board.Move {
	if m != board.NoMove {
		return m
	}
	if legal := pos.LegalMoves(); len(legal) > 0 {
		return legal[0]
	}
	return board.NoMove
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		fmt.Sprintf("currmove %s", info.Move),
	}

	if info.Score > engine.MateScore-engine.MaxPly {
		mateIn := (engine.MateScore - info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else if info.Score < -engine.MateScore+engine.MaxPly {
		mateIn := -(engine.MateScore + info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	u.printf("info %s\n", strings.Join(parts, " "))
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value []string
	var target *[]string

	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target != nil {
				*target = append(*target, arg)
			}
		}
	}
	val := strings.Join(value, " ")

	switch strings.ToLower(strings.Join(name, " ")) {
	case "depth":
		depth, err := strconv.Atoi(val)
		if err != nil || depth < 0 || depth >= engine.MaxPly {
			u.infoString("Invalid depth: %s", val)
			return
		}
		u.engine.SetDepth(depth)
		u.saveSettings()
	case "difficulty":
		d, err := engine.ParseDifficulty(val)
		if err != nil {
			u.infoString("%v", err)
			return
		}
		u.engine.SetDifficulty(d)
		u.saveSettings()
	case "cpuprofile":
		u.stopProfile()
		if val != "" && val != "stop" {
			u.startProfile(val)
		}
	default:
		u.infoString("Unknown option: %s", strings.Join(name, " "))
	}
}

// LoadSettings applies persisted settings to the engine.
func (u *UCI) LoadSettings() error {
	if u.store == nil {
		return nil
	}

	settings, err := u.store.LoadSettings()
	if err != nil {
		return err
	}
	if d, err := engine.ParseDifficulty(settings.Difficulty); err == nil {
		u.engine.SetDifficulty(d)
	}
	u.engine.SetDepth(settings.Depth)
	return nil
}

func (u *UCI) saveSettings() {
	if u.store == nil {
		return
	}

	settings := &storage.Settings{Difficulty: u.engine.Difficulty().String()}
	if d := u.engine.Depth(); d != engine.DifficultyDepth[u.engine.Difficulty()] {
		settings.Depth = d
	}
	if err := u.store.SaveSettings(settings); err != nil {
		u.infoString("Failed to save settings: %v", err)
	}
}

// handleEval prints the static evaluation of the current position.
func (u *UCI) handleEval() {
	score := u.engine.Evaluate(u.position)
	u.printf("Eval: %d (%s, side to move)\n", score, engine.ScoreToString(score))
	u.printf("Material: %d (white)\n", engine.Material(u.position))
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil {
			u.infoString("Invalid perft depth: %s", args[0])
			return
		}
		depth = d
	}
	u.runPerft(depth)
}

func (u *UCI) runPerft(depth int) {
	start := time.Now()

	var nodes uint64
	cached := false
	if u.store != nil {
		var err error
		nodes, cached, err = u.store.Perft(u.position, depth)
		if err != nil {
			u.infoString("Perft cache: %v", err)
			nodes = u.engine.Perft(u.position, depth)
		}
	} else {
		nodes = u.engine.Perft(u.position, depth)
	}
	elapsed := time.Since(start)

	u.printf("Nodes: %d\n", nodes)
	if cached {
		u.println("Cached: true")
		return
	}
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		u.printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func (u *UCI) startProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		u.infoString("Failed to create profile: %v", err)
		return
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		u.infoString("Failed to start profile: %v", err)
		return
	}
	u.profileFile = f
	u.infoString("CPU profiling to %s", path)
}

func (u *UCI) stopProfile() {
	if u.profileFile == nil {
		return
	}
	pprof.StopCPUProfile()
	u.profileFile.Close()
	u.profileFile = nil
	u.infoString("CPU profile saved")
}

// handleQuit stops profiling before the loop exits.
func (u *UCI) handleQuit() {
	u.stopProfile()
}
