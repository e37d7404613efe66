package scan

import (
	"context"
	"errors"

	"github.com/betterleaks/kwfsm"
	"github.com/betterleaks/kwfsm/fsm"
	"github.com/fatih/semgroup"
)

// batchSize is how many queries one goroutine handles.
const batchSize = 512

// Batch looks up every query against tb. Lookups run concurrently over the
// shared read-only table; results keep the order of queries. Invalid queries
// are reported with Invalid set rather than failing the batch.
func Batch(ctx context.Context, tb *fsm.Table, queries []string, concurrency int) ([]kwfsm.Result, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]kwfsm.Result, len(queries))

	sg := semgroup.NewGroup(ctx, int64(concurrency))
	for start := 0; start < len(queries); start += batchSize {
		end := min(start+batchSize, len(queries))
		sg.Go(func() error {
			for i := start; i < end; i++ {
				if i%64 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				results[i] = lookup(tb, queries[i])
			}
			return nil
		})
	}
	if err := sg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func lookup(tb *fsm.Table, q string) kwfsm.Result {
	id, err := tb.Lookup(q)
	return kwfsm.Result{Query: q, ID: id, Invalid: errors.Is(err, kwfsm.ErrInvalidQuery)}
}
