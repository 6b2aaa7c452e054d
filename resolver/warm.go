package resolver

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Warm resolves the distinct, not yet decided entities concurrently, with at
// most workers lookups in flight. Blank entities are skipped. Because the
// dictionary keeps the first decision per key, a later sequential Resolve
// returns exactly what Warm decided.
func (r *Resolver) Warm(ctx context.Context, entities []string, policy Policy, workers int) error {
	if workers < 1 {
		workers = 1
	}

	seen := make(map[string]struct{})
	var pending []string
	for _, e := range entities {
		key := NormalizeKey(e)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := r.dict.Get(key); ok {
			continue
		}
		pending = append(pending, e)
	}
	if len(pending) == 0 {
		return nil
	}

	r.logger.Debug("Warming resolver", "entities", len(pending), "workers", workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, e := range pending {
		g.Go(func() error {
			if _, err := r.Resolve(gctx, e, policy); err != nil && !errors.Is(err, ErrBlankEntity) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("warm resolver: %w", err)
	}
	return ctx.Err()
}
