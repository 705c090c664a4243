package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseMove reads a coordinate such as "j9" or "c17": a column letter a-s
// followed by a one or two digit row 0-18.
func ParseMove(text string) (Move, error) {
	text = strings.TrimSpace(text)
	if len(text) < 2 {
		return Move{}, fmt.Errorf("%w: expected a column letter and a row number", ErrMalformedInput)
	}
	column := text[0]
	if column < 'a' || column >= 'a'+BoardSize {
		return Move{}, fmt.Errorf("%w: first character must be a lowercase letter a-%c", ErrMalformedInput, 'a'+BoardSize-1)
	}
	digits := text[1:]
	if len(digits) > 2 {
		return Move{}, fmt.Errorf("%w: row must be one or two digits", ErrMalformedInput)
	}
	row := 0
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Move{}, fmt.Errorf("%w: row must be a number between 0 and %d", ErrMalformedInput, BoardSize-1)
		}
		row = row*10 + int(digits[i]-'0')
	}
	if row >= BoardSize {
		return Move{}, fmt.Errorf("%w: invalid row %d, must be between 0 and %d", ErrMalformedInput, row, BoardSize-1)
	}
	return Move{X: int(column - 'a'), Y: row}, nil
}

// ReadMove keeps reading lines until one parses to a coordinate accepted by
// legal. Problems are reported on out. It returns io.EOF once input runs dry.
func ReadMove(in *bufio.Reader, out io.Writer, legal func(Move) bool) (Move, error) {
	for {
		line, err := in.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return Move{}, err
		}
		move, parseErr := ParseMove(line)
		if parseErr != nil {
			fmt.Fprintln(out, parseErr)
			continue
		}
		if legal != nil && !legal(move) {
			fmt.Fprintln(out, "Invalid piece location.")
			continue
		}
		return move, nil
	}
}
