// Command mailbox exercises the board package from the terminal: dump
// legal moves for a position, step through random self-play, run perft
// node counts, or browse a game interactively.
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/eightfile/mailbox/board"
)

const (
	exitOK = iota
	exitErr
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")

	movegenRun  = flag.Bool("movegen", false, "dump legal moves for a position")
	movegenDraw = flag.Bool("movegen.draw", false, "draw the board reached by each legal move")

	stepRun    = flag.Bool("step", false, "play random self-play steps")
	stepCount  = flag.Int("step.count", 200, "number of plies to play in step mode")
	perftRun   = flag.Bool("perft", false, "run a perft node count")
	perftDepth = flag.Int("perft.depth", 4, "perft search depth")
	perftPara  = flag.Bool("perft.parallel", false, "fan perft out across goroutines")

	tuiRun = flag.Bool("tui", false, "browse a position's legal moves interactively")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	if err := realMain(flag.Args()); err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	switch {
	case *movegenRun:
		return movegen(fen, *movegenDraw)
	case *stepRun:
		return step(fen, *stepCount)
	case *perftRun:
		return runPerftCmd(fen, *perftDepth, *perftPara)
	case *tuiRun:
		return runTUI(fen)
	default:
		return movegen(fen, false)
	}
}
