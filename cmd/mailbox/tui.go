package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/eightfile/mailbox/board"
)

// runTUI opens an interactive terminal screen for browsing the legal
// moves of a position: arrow keys move the selection, enter plays the
// selected move, 'u' undoes the last one, 'q' or Esc quits.
func runTUI(fen string) error {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	selected := 0
	for {
		moves := b.LegalMoves()
		if selected >= len(moves) {
			selected = len(moves) - 1
		}
		if selected < 0 {
			selected = 0
		}
		drawTUI(screen, b, moves, selected)

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyUp:
				if selected > 0 {
					selected--
				}
			case ev.Key() == tcell.KeyDown:
				if selected < len(moves)-1 {
					selected++
				}
			case ev.Key() == tcell.KeyEnter:
				if len(moves) > 0 {
					b.MakeMove(moves[selected])
					selected = 0
				}
			case ev.Rune() == 'u':
				if b.CanUnmakeMove() {
					b.UnmakeMove()
					selected = 0
				}
			}
		}
	}
}

func drawTUI(screen tcell.Screen, b *board.Board, moves []board.Move, selected int) {
	screen.Clear()
	style := tcell.StyleDefault

	writeString(screen, 0, 0, style, fmt.Sprintf("%s to move | state: %s | fen: %s", b.Turn(), b.State(), b.FEN()))
	for i, line := range splitLines(b.Dump()) {
		writeString(screen, 0, 2+i, style, line)
	}

	listStyle := style
	for i, mv := range moves {
		s := listStyle
		if i == selected {
			s = s.Reverse(true)
		}
		writeString(screen, 40, 2+i, s, fmt.Sprintf("%2d. %-6s %s", i+1, mv.UCI(), mv))
	}

	writeString(screen, 0, 14, style, "up/down: select   enter: play   u: undo   q: quit")
	screen.Show()
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func writeString(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
