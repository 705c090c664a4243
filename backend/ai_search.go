package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

const DefaultSearchDepth = 6

type SearchOptions struct {
	Depth int
	// Workers caps concurrent root tasks; zero starts one goroutine per candidate.
	Workers int
}

type SearchStats struct {
	Nodes   int64
	Cutoffs int64
}

type SearchResult struct {
	Move       Move
	Score      int64
	Candidates int
	Depth      int
	Nodes      int64
	Cutoffs    int64
	Elapsed    time.Duration
}

// subtreeSearchFn is swapped in tests to exercise task failure handling.
var subtreeSearchFn = alphaBeta

// SearchBestMove scores every relevant move of the side to move in its own
// goroutine and returns the best one. Ties keep the earliest move in scan order.
// A failing or panicking task fails the whole search.
func SearchBestMove(ctx context.Context, state GameState, opts SearchOptions) (SearchResult, error) {
	start := time.Now()
	if state.IsFinished() {
		return SearchResult{}, ErrGameOver
	}
	depth := opts.Depth
	if depth < 1 {
		depth = DefaultSearchDepth
	}
	perspective := state.ToMove
	candidates := RelevantMoves(state)
	if len(candidates) == 0 {
		return SearchResult{}, ErrNoCandidates
	}

	type rootScore struct {
		score int64
		stats SearchStats
	}
	results := make([]rootScore, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, move := range candidates {
		child := state.Clone()
		if _, err := child.ApplyMove(move); err != nil {
			return SearchResult{}, abortRootSearch(g, move, err)
		}
		g.Go(func() (err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					err = fmt.Errorf("search task for %s panicked: %v", move, recovered)
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			var stats SearchStats
			score := subtreeSearchFn(child, depth-1, lossScore, winScore, perspective, &stats)
			results[i] = rootScore{score: score, stats: stats}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SearchResult{}, err
	}

	best := SearchResult{Move: candidates[0], Score: results[0].score, Candidates: len(candidates), Depth: depth}
	for i, res := range results {
		best.Nodes += res.stats.Nodes
		best.Cutoffs += res.stats.Cutoffs
		if res.score > best.Score {
			best.Score = res.score
			best.Move = candidates[i]
		}
	}
	best.Elapsed = time.Since(start)
	return best, nil
}

// abortRootSearch joins the tasks already started and reports their failure
// together with the candidate that could not be applied.
func abortRootSearch(g *errgroup.Group, move Move, applyErr error) error {
	return errors.Join(fmt.Errorf("root candidate %s: %w", move, applyErr), g.Wait())
}

// alphaBeta is a plain minimax with alpha-beta bounds, always scored from
// perspective regardless of who is to move. Every child is an owned clone.
func alphaBeta(state GameState, depth int, alpha, beta int64, perspective PlayerColor, stats *SearchStats) int64 {
	stats.Nodes++
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

	if state.ToMove == perspective {
		value := lossScore
		for _, move := range candidates {
			child := state.Clone()
			if _, err := child.ApplyMove(move); err != nil {
				continue
			}
			value = max(value, alphaBeta(child, depth-1, alpha, beta, perspective, stats))
			if value >= beta {
				stats.Cutoffs++
				break
			}
			alpha = max(alpha, value)
		}
		return value
	}

	value := winScore
	for _, move := range candidates {
		child := state.Clone()
		if _, err := child.ApplyMove(move); err != nil {
			continue
		}
		value = min(value, alphaBeta(child, depth-1, alpha, beta, perspective, stats))
		if value <= alpha {
			stats.Cutoffs++
			break
		}
		beta = min(beta, value)
	}
	return value
}
