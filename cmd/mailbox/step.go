package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/eightfile/mailbox/board"
)

func step(fen string, plies int) error {
	log.Println("============ step")
	var (
		timesLegalMoves []time.Duration
		timesMakeMove   []time.Duration
		timesState      []time.Duration
	)
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	rand.Seed(1)

stepLoop:
	for ply := 0; ply < plies; ply++ {
		t1 := time.Now()
		mvs := b.LegalMoves()
		t2 := time.Now()
		timesLegalMoves = append(timesLegalMoves, t2.Sub(t1))
		if len(mvs) == 0 {
			return fmt.Errorf("unexpected move exhaustion: state=%s", b.State())
		}
		mv := mvs[rand.Intn(len(mvs))]

		t1 = time.Now()
		b.MakeMove(mv)
		t2 = time.Now()
		timesMakeMove = append(timesMakeMove, t2.Sub(t1))

		t1 = time.Now()
		st := b.State()
		t2 = time.Now()
		timesState = append(timesState, t2.Sub(t1))

		fmt.Printf("\n===== [#%d] %s %s\n", ply/2+1, b.Turn().Opposite(), mv)
		fmt.Println(b.Draw())
		fmt.Println(b.FEN())
		if st.Over() {
			break stepLoop
		}
	}

	avg := func(ds []time.Duration) time.Duration {
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		if len(ds) == 0 {
			return 0
		}
		return s / time.Duration(len(ds))
	}

	fmt.Println()
	fmt.Println(b.State())
	fmt.Println("legalmoves:", avg(timesLegalMoves))
	fmt.Println("makemove:  ", avg(timesMakeMove))
	fmt.Println("state:     ", avg(timesState))
	return nil
}
