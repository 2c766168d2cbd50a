package main

import (
	"log"

	"github.com/eightfile/mailbox/bench"
)

func runPerftCmd(fen string, depth int, parallel bool) error {
	log.Printf("============ perft(%d): %s\n", depth, fen)
	out := make(chan string, 256)
	done := make(chan error, 1)
	go func() {
		done <- bench.Perft(depth, fen, parallel, true, out)
		close(out)
	}()
	for line := range out {
		log.Println(line)
	}
	return <-done
}
