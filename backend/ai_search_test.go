package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestSearchTakesImmediateFive(t *testing.T) {
	state := newTestState()
	placeStones(&state, CellBlack, Move{X: 5, Y: 9}, Move{X: 6, Y: 9}, Move{X: 7, Y: 9}, Move{X: 8, Y: 9})
	placeStones(&state, CellWhite, Move{X: 5, Y: 12}, Move{X: 12, Y: 4})
	state.ToMove = PlayerBlack

	for _, depth := range []int{1, 2} {
		result, err := SearchBestMove(context.Background(), state, SearchOptions{Depth: depth})
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		// Both ends win; the first one in scan order is kept.
		if result.Move != (Move{X: 4, Y: 9}) {
			t.Fatalf("depth %d: expected (4,9), got %v", depth, result.Move)
		}
		if result.Score != winScore {
			t.Fatalf("depth %d: expected win score, got %d", depth, result.Score)
		}
	}
}

func TestSearchBlocksClosedFour(t *testing.T) {
	state := newTestState()
	placeStones(&state, CellWhite, Move{X: 5, Y: 9}, Move{X: 6, Y: 9}, Move{X: 7, Y: 9}, Move{X: 8, Y: 9})
	placeStones(&state, CellBlack, Move{X: 4, Y: 9})
	state.ToMove = PlayerBlack

	result, err := SearchBestMove(context.Background(), state, SearchOptions{Depth: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Move != (Move{X: 9, Y: 9}) {
		t.Fatalf("expected black to block at (9,9), got %v (score %d)", result.Move, result.Score)
	}
	if result.Score == lossScore {
		t.Fatalf("blocking must not be scored as a loss")
	}
	if result.Nodes == 0 || result.Candidates == 0 {
		t.Fatalf("expected search statistics, got %+v", result)
	}
}

func TestSearchWorkerLimitGivesSameAnswer(t *testing.T) {
	state := newTestState()
	placeStones(&state, CellWhite, Move{X: 5, Y: 9}, Move{X: 6, Y: 9}, Move{X: 7, Y: 9}, Move{X: 8, Y: 9})
	placeStones(&state, CellBlack, Move{X: 4, Y: 9})
	state.ToMove = PlayerBlack

	eager, err := SearchBestMove(context.Background(), state, SearchOptions{Depth: 2})
	if err != nil {
		t.Fatalf("eager search: %v", err)
	}
	limited, err := SearchBestMove(context.Background(), state, SearchOptions{Depth: 2, Workers: 1})
	if err != nil {
		t.Fatalf("limited search: %v", err)
	}
	if eager.Move != limited.Move || eager.Score != limited.Score || eager.Nodes != limited.Nodes {
		t.Fatalf("results differ: %+v vs %+v", eager, limited)
	}
}

func TestSearchTiesKeepFirstCandidate(t *testing.T) {
	prev := subtreeSearchFn
	defer func() { subtreeSearchFn = prev }()
	subtreeSearchFn = func(state GameState, _ int, _, _ int64, _ PlayerColor, stats *SearchStats) int64 {
		stats.Nodes++
		switch state.LastMove {
		case Move{X: 10, Y: 10}, Move{X: 8, Y: 10}:
			return 10
		}
		return 0
	}

	state := newTestState()
	playMoves(t, &state, Move{X: 9, Y: 9})
	for i := 0; i < 5; i++ {
		result, err := SearchBestMove(context.Background(), state, SearchOptions{Depth: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Move != (Move{X: 8, Y: 10}) || result.Score != 10 {
			t.Fatalf("expected (8,10) with score 10, got %v/%d", result.Move, result.Score)
		}
		if result.Nodes != 8 {
			t.Fatalf("expected one node per candidate, got %d", result.Nodes)
		}
	}
}

func TestSearchAllEqualPicksFirstRelevantCell(t *testing.T) {
	prev := subtreeSearchFn
	defer func() { subtreeSearchFn = prev }()
	subtreeSearchFn = func(GameState, int, int64, int64, PlayerColor, *SearchStats) int64 { return 0 }

	state := newTestState()
	playMoves(t, &state, Move{X: 9, Y: 9})
	result, err := SearchBestMove(context.Background(), state, SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Move != (Move{X: 8, Y: 8}) {
		t.Fatalf("expected first relevant cell (8,8), got %v", result.Move)
	}
	if result.Depth != DefaultSearchDepth {
		t.Fatalf("expected default depth %d, got %d", DefaultSearchDepth, result.Depth)
	}
}

func TestSearchPanicFailsWholeSearch(t *testing.T) {
	prev := subtreeSearchFn
	defer func() { subtreeSearchFn = prev }()
	subtreeSearchFn = func(state GameState, _ int, _, _ int64, _ PlayerColor, _ *SearchStats) int64 {
		if state.LastMove == (Move{X: 10, Y: 9}) {
			panic("boom")
		}
		return 1
	}

	state := newTestState()
	playMoves(t, &state, Move{X: 9, Y: 9})
	_, err := SearchBestMove(context.Background(), state, SearchOptions{Depth: 2})
	if err == nil {
		t.Fatalf("expected the panic to surface as an error")
	}
	if !strings.Contains(err.Error(), "panicked") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchEmptyBoardHasNoCandidates(t *testing.T) {
	state := newTestState()
	if _, err := SearchBestMove(context.Background(), state, SearchOptions{Depth: 2}); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestSearchFinishedGame(t *testing.T) {
	state := newTestState()
	placeStones(&state, CellWhite, Move{X: 0, Y: 0}, Move{X: 1, Y: 0}, Move{X: 2, Y: 0}, Move{X: 3, Y: 0})
	playMoves(t, &state, Move{X: 4, Y: 0})
	if _, err := SearchBestMove(context.Background(), state, SearchOptions{Depth: 2}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestSearchDoesNotTouchCallerState(t *testing.T) {
	state := newTestState()
	playMoves(t, &state, Move{X: 9, Y: 9}, Move{X: 10, Y: 10})
	before := state.Clone()
	if _, err := SearchBestMove(context.Background(), state, SearchOptions{Depth: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSameState(t, before, state)
}

func TestAlphaBetaDepthZeroIsEvaluation(t *testing.T) {
	state := newTestState()
	playMoves(t, &state, Move{X: 9, Y: 9})
	var stats SearchStats
	got := alphaBeta(state, 0, lossScore, winScore, PlayerWhite, &stats)
	if want := EvaluateBoard(state, PlayerWhite); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
	if stats.Nodes != 1 {
		t.Fatalf("expected a single node, got %d", stats.Nodes)
	}
}

func TestAbortRootSearchKeepsTaskFailure(t *testing.T) {
	taskErr := errors.New("task failed")
	var g errgroup.Group
	g.Go(func() error { return taskErr })

	err := abortRootSearch(&g, Move{X: 3, Y: 4}, ErrInvalidMove)
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected the apply error, got %v", err)
	}
	if !errors.Is(err, taskErr) {
		t.Fatalf("expected the task error to be kept, got %v", err)
	}
	if !strings.Contains(err.Error(), "d4") {
		t.Fatalf("expected the candidate in the message, got %v", err)
	}
}

func TestAbortRootSearchWithoutTaskFailure(t *testing.T) {
	var g errgroup.Group
	g.Go(func() error { return nil })
	err := abortRootSearch(&g, Move{X: 0, Y: 0}, ErrInvalidMove)
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected the apply error, got %v", err)
	}
}

// minimax is alphaBeta without bounds.
func minimax(state GameState, depth int, perspective PlayerColor) int64 {
	if state.IsFinished() {
		return terminalScore(state, perspective)
	}
	if depth <= 0 {
		return EvaluateBoard(state, perspective)
	}
	candidates := RelevantMoves(state)
	if len(candidates) == 0 {
		return EvaluateBoard(state, perspective)
	}
	maximizing := state.ToMove == perspective
	value := winScore
	if maximizing {
		value = lossScore
	}
	for _, move := range candidates {
		child := state.Clone()
		if _, err := child.ApplyMove(move); err != nil {
			continue
		}
		score := minimax(child, depth-1, perspective)
		if maximizing {
			value = max(value, score)
		} else {
			value = min(value, score)
		}
	}
	return value
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	state := newTestState()
	playMoves(t, &state, Move{X: 9, Y: 9}, Move{X: 10, Y: 9}, Move{X: 10, Y: 10}, Move{X: 8, Y: 8})

	for depth := 1; depth <= 3; depth++ {
		for _, perspective := range []PlayerColor{PlayerWhite, PlayerBlack} {
			var stats SearchStats
			got := alphaBeta(state, depth, lossScore, winScore, perspective, &stats)
			want := minimax(state, depth, perspective)
			if got != want {
				t.Fatalf("depth %d, %s: alpha-beta %d, minimax %d", depth, perspective, got, want)
			}
		}
	}
}
