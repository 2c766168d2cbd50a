package bench

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Suite is one perft fixture: a starting FEN and the expected leaf count
// at depth i+1 for each entry in Expected.
type Suite struct {
	FEN      string
	Expected []uint64
}

// LoadSuite reads a semicolon-delimited perft fixture file: each
// non-blank, non-comment line is "<FEN> ; d1 ; d2 ; ...". Blank lines and
// lines starting with "#" are skipped.
func LoadSuite(path string) ([]Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var suites []Suite
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ";")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		s := Suite{FEN: fields[0]}
		for _, want := range fields[1:] {
			n, err := strconv.ParseUint(want, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bench: bad node count %q in %s: %w", want, path, err)
			}
			s.Expected = append(s.Expected, n)
		}
		suites = append(suites, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return suites, nil
}
