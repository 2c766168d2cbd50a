// Package bench implements the perft node-counting harness: an oracle
// that walks the legal move tree to a fixed depth and reports how many
// leaves it has, used to validate a move generator against published
// reference counts.
package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/eightfile/mailbox/board"
)

// Counts tallies a perft run: total leaf nodes plus how many of the
// moves leading to them were captures, en-passant captures, castles,
// promotions, or checks.
type Counts struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

// Perft runs a node count to depth from fen, writing a formatted summary
// line (and, if verbose, one line per root move) to out.
func Perft(depth int, fen string, parallel, verbose bool, out chan<- string) error {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}

	run := runPerft
	if parallel {
		run = runPerftParallel
	}

	var counts Counts
	start := time.Now()
	run(b, depth, true, verbose, out, &counts)
	elapsed := time.Since(start)

	rate := int64(0)
	if elapsed.Seconds() > 0 {
		rate = int64(float64(counts.Nodes) / elapsed.Seconds())
	}
	out <- message.NewPrinter(language.English).Sprintf(
		"d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
		depth, counts.Nodes, rate, counts.Captures, counts.EnPassant, counts.Castles, counts.Promotions, counts.Checks, elapsed.Seconds(),
	)

	return nil
}

type perftFunc func(b *board.Board, d int, root, verbose bool, out chan<- string, counts *Counts) uint64

// runPerft walks b's legal move tree in place, using make/unmake rather
// than cloning, since only one goroutine ever touches b.
func runPerft(b *board.Board, d int, root, verbose bool, out chan<- string, counts *Counts) uint64 {
	if d == 0 {
		counts.Nodes++
		return 1
	}
	var sum uint64
	for _, mv := range b.LegalMoves() {
		b.MakeMove(mv)
		if d == 1 {
			tallyMove(b, mv, counts)
		}
		child := runPerft(b, d-1, false, verbose, out, counts)
		b.UnmakeMove()
		if verbose && root {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
		}
		sum += child
	}
	return sum
}

// runPerftParallel fans out one goroutine per legal move at every level
// of the tree, each exploring its own cloned board so make/unmake never
// races.
func runPerftParallel(b *board.Board, d int, root, verbose bool, out chan<- string, counts *Counts) uint64 {
	if d == 0 {
		atomic.AddUint64(&counts.Nodes, 1)
		return 1
	}
	var sum uint64
	var wg sync.WaitGroup
	for _, mv := range b.LegalMoves() {
		mv := mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			bb := b.Clone()
			bb.MakeMove(mv)
			if d == 1 {
				tallyMoveAtomic(bb, mv, counts)
			}
			child := runPerftParallel(bb, d-1, false, verbose, out, counts)
			if verbose && root {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
			}
			atomic.AddUint64(&sum, child)
		}()
	}
	wg.Wait()
	return sum
}

// tallyMove records the flags of a move already applied to b: b.InCheck
// now reports whether the move just made gives check, since MakeMove has
// already switched the side to move to the mover's opponent.
func tallyMove(b *board.Board, mv board.Move, counts *Counts) {
	if mv.IsCapture() {
		counts.Captures++
	}
	if mv.IsEnPassant() {
		counts.EnPassant++
	}
	if mv.IsCastle() {
		counts.Castles++
	}
	if mv.IsPromotion() {
		counts.Promotions++
	}
	if b.InCheck() {
		counts.Checks++
	}
}

func tallyMoveAtomic(b *board.Board, mv board.Move, counts *Counts) {
	if mv.IsCapture() {
		atomic.AddUint64(&counts.Captures, 1)
	}
	if mv.IsEnPassant() {
		atomic.AddUint64(&counts.EnPassant, 1)
	}
	if mv.IsCastle() {
		atomic.AddUint64(&counts.Castles, 1)
	}
	if mv.IsPromotion() {
		atomic.AddUint64(&counts.Promotions, 1)
	}
	if b.InCheck() {
		atomic.AddUint64(&counts.Checks, 1)
	}
}
