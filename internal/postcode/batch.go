package postcode

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Separator delimits postcodes in a batch string.
const Separator = ";"

// SplitBatch splits a delimited batch into raw candidates. Segments are
// returned unmodified, surrounding whitespace included, so each one is
// normalized by the engine. Only the empty string yields no candidates.
func SplitBatch(batch string) []string {
	if batch == "" {
		return nil
	}
	return strings.Split(batch, Separator)
}

// CheckBatch checks every candidate in batch, in order.
func CheckBatch(batch string) []Result {
	items := SplitBatch(batch)
	results := make([]Result, len(items))
	for i, raw := range items {
		results[i] = Check(raw)
	}
	return results
}

// CheckAll checks items with at most limit concurrent workers and returns
// results in input order. A limit below 2 checks sequentially. The only
// error is ctx's, when it is cancelled before all items are checked.
func CheckAll(ctx context.Context, items []string, limit int) ([]Result, error) {
	results := make([]Result, len(items))

	if limit < 2 {
		for i, raw := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = Check(raw)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, raw := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Check(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
