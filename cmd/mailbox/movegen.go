package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/eightfile/mailbox/board"
)

func movegen(fen string, draw bool) error {
	log.Println("============ movegen")
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Println("to move:", b.Turn())
	fmt.Println(b.Dump())
	fmt.Println(b.Draw())
	fmt.Println(b.State())
	dumpMoves(b)

	if draw {
		for _, mv := range b.LegalMoves() {
			b.MakeMove(mv)
			fmt.Println(mv)
			fmt.Println(b.Draw())
			fmt.Println(b.FEN())
			b.UnmakeMove()
		}
	}
	return nil
}

func dumpMoves(b *board.Board) {
	mvs := b.LegalMoves()
	for i, mv := range mvs {
		fmt.Printf("option %*d: [%s] %s %s => %s (cap=%v) (enp=%v) (castle=%v) (promo=%s)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), mv.Moved, mv.From, mv.To, mv.IsCapture(), mv.IsEnPassant(), mv.IsCastle(), mv.Promoted)
	}
}
