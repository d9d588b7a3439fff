package fingerprint

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest per-goroutine slice of elements worth scheduling.
const minChunk = 256

// RefineOptions tunes color refinement.
//   - Workers:   goroutines per round (<= 0 means GOMAXPROCS).
//   - MaxRounds: hard cap on rounds (<= 0 means element count + 1).
type RefineOptions struct {
	Workers   int
	MaxRounds int
}

// Refinement is the outcome of Refine.
type Refinement struct {
	// A and B are the final colors; equal colors across inputs mean equal
	// fingerprints.
	A, B []uint32

	// Classes is the number of distinct colors over both inputs.
	Classes int

	// Rounds is the number of refinement rounds performed.
	Rounds int

	// Balanced is false when some round produced a class with different
	// sizes in A and B; A and B then hold that round's colors.
	Balanced bool

	// Stable is true when the last round did not split any class.
	Stable bool
}

// ParallelRange splits [0, n) into chunks and runs fn on each chunk with at
// most workers goroutines. It returns the first error, or ctx's error.
func ParallelRange(ctx context.Context, n, workers int, fn func(lo, hi int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n <= minChunk || workers == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(0, n)
	}
	chunk := max(minChunk, (n+workers-1)/workers)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(n, lo+chunk)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(lo, hi)
		})
	}
	return g.Wait()
}

// roundKeys computes, for every element, the key
// (old color, sorted (label, neighbor color) pairs...) from the previous
// round's colors. Elements are independent, so chunks run in parallel.
func roundKeys(ctx context.Context, colors []uint32, adj *Adjacency, workers int) ([][]uint32, error) {
	keys := make([][]uint32, len(colors))
	err := ParallelRange(ctx, len(colors), workers, func(lo, hi int) error {
		var pairs []uint64
		for i := lo; i < hi; i++ {
			targets, labels := adj.Arcs(i)
			pairs = pairs[:0]
			for k, t := range targets {
				pairs = append(pairs, uint64(labels[k])<<32|uint64(colors[t]))
			}
			slices.Sort(pairs)
			key := make([]uint32, 1, 1+2*len(pairs))
			key[0] = colors[i]
			for _, p := range pairs {
				key = append(key, uint32(p>>32), uint32(p))
			}
			keys[i] = key
		}
		return nil
	})
	return keys, err
}

// Refine runs color refinement on both inputs with a shared palette.
//
// Steps:
//  1. Check the initial colors are balanced; if not, return Balanced=false.
//  2. Each round: compute all keys of A and B in parallel (barrier), intern
//     them sequentially A then B into a fresh palette.
//  3. Stop when a round does not increase the class count (fixed point),
//     when a round is unbalanced, or at MaxRounds.
//
// Labels of adjA and adjB must come from one shared palette.
func Refine(ctx context.Context, colorsA, colorsB []uint32, adjA, adjB *Adjacency, opts RefineOptions) (Refinement, error) {
	res := Refinement{A: colorsA, B: colorsB}
	res.Classes = Distinct(colorsA, colorsB)
	if ok, _ := Balanced(colorsA, colorsB); !ok {
		return res, nil
	}
	res.Balanced = true

	maxRounds := opts.MaxRounds
	if maxRounds <= 0 {
		maxRounds = len(colorsA) + 1
	}
	for res.Rounds < maxRounds {
		keysA, err := roundKeys(ctx, res.A, adjA, opts.Workers)
		if err != nil {
			return res, err
		}
		keysB, err := roundKeys(ctx, res.B, adjB, opts.Workers)
		if err != nil {
			return res, err
		}

		pal := NewPalette()
		nextA := make([]uint32, len(keysA))
		for i, k := range keysA {
			nextA[i] = pal.Intern(k...)
		}
		nextB := make([]uint32, len(keysB))
		for i, k := range keysB {
			nextB[i] = pal.Intern(k...)
		}
		res.Rounds++

		grew := pal.Len() > res.Classes
		res.A, res.B, res.Classes = nextA, nextB, pal.Len()
		if ok, _ := Balanced(nextA, nextB); !ok {
			res.Balanced = false
			return res, nil
		}
		if !grew {
			res.Stable = true
			return res, nil
		}
	}
	return res, nil
}
