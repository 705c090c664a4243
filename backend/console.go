package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// RunConsole plays one game on a terminal: read or compute a move, apply it,
// draw the board, and stop after announcing the winner.
func RunConsole(ctx context.Context, in io.Reader, out io.Writer, settings GameSettings, logger *zap.SugaredLogger) error {
	// Both seats may be human; they must share one buffered reader.
	reader := bufio.NewReader(in)
	factory := func(kind PlayerType, _ PlayerColor) IPlayer {
		if kind == PlayerAI {
			return NewAIPlayer(logger)
		}
		return NewConsoleHumanPlayer(reader, out)
	}
	game := NewGame(settings, logger, factory)
	fmt.Fprint(out, Render(game.State()))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if game.CurrentPlayerIsHuman() {
			fmt.Fprintf(out, "%s to play (e.g. j9): ", game.State().ToMove)
		}
		result, err := game.PlayTurn(ctx)
		if errors.Is(err, ErrInvalidMove) {
			fmt.Fprintln(out, err)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprint(out, Render(game.State()))
		if result.Finished {
			fmt.Fprintf(out, "%s wins!\n", result.Player)
			return nil
		}
	}
}
