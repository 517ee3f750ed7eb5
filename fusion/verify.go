package fusion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Verify cross-checks the built table and returns the first violation found:
//
//   - Fuse(a, b) and Fuse(b, a) agree for every persona pair;
//   - no result is a treasure or guillotine persona;
//   - every pair listed by FusionsTo(x) fuses into x, exactly once;
//   - every fusing pair is listed under its result.
//
// Personas are checked in parallel, at most workers at a time (workers < 1
// means one per persona). Cancelling ctx stops the check early.
func (e *Engine) Verify(ctx context.Context, workers int) error {
	listed := make(map[[2]string]string, e.pairs)
	for result, pairs := range e.results {
		for _, p := range pairs {
			k := p.key()
			if prev, dup := listed[k]; dup {
				return fmt.Errorf("%w: %s x %s listed under %s and %s", ErrInconsistent, k[0], k[1], prev, result)
			}
			listed[k] = result
		}
	}

	names := e.fusions.Nodes()
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, a := range names {
		a := a
		g.Go(func() error {
			return e.verifyPersona(gctx, a, names, listed)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	e.log.Debug("fusion table verified", slog.Int("personas", len(names)), slog.Int("fusions", len(listed)))

	return nil
}

func (e *Engine) verifyPersona(ctx context.Context, a string, names []string, listed map[[2]string]string) error {
	for _, b := range names {
		if a >= b {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		ab, errAB := e.Fuse(a, b)
		ba, errBA := e.Fuse(b, a)
		if (errAB == nil) != (errBA == nil) || ab.Name != ba.Name {
			return fmt.Errorf("%w: %s x %s is not symmetric", ErrInconsistent, a, b)
		}

		k := [2]string{a, b}
		want, isListed := listed[k]
		switch {
		case errors.Is(errAB, ErrNoFusion):
			if isListed {
				return fmt.Errorf("%w: %s x %s listed under %s but does not fuse", ErrInconsistent, a, b, want)
			}
		case errAB != nil:
			return errAB
		case ab.Kind.IsSpecialResult():
			return fmt.Errorf("%w: %s x %s yields %s persona %s", ErrInconsistent, a, b, ab.Kind, ab.Name)
		case !isListed || want != ab.Name:
			return fmt.Errorf("%w: %s x %s = %s is not indexed under it", ErrInconsistent, a, b, ab.Name)
		}
	}

	return nil
}
