package mcts

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/minishogi/internal/shogi"
	"github.com/hailam/minishogi/internal/telemetry"
)

// Evaluator supplies the policy/value pair an external neural network
// would produce for pos. The returned policy slice must be indexed by
// shogi.Move.ToPolicyIndex and is read-only for the duration of the call.
type Evaluator func(pos *shogi.Position) (policy []float32, value float32)

// SearchOptions configures a single call to ParallelSearch.
type SearchOptions struct {
	Playouts       int
	Parallelism    int
	ForcedPlayouts bool
}

var (
	playoutCounterOnce sync.Once
	playoutCounter     metric.Int64Counter
)

// playoutsTotal lazily creates the playout counter against whatever
// MeterProvider the host process has configured, matching the
// telemetry package's lazy Tracer()/Meter() accessors.
func playoutsTotal() metric.Int64Counter {
	playoutCounterOnce.Do(func() {
		c, err := telemetry.Meter().Int64Counter(
			"minishogi.mcts.playouts",
			metric.WithDescription("total select_leaf->backpropagate rounds executed"),
		)
		if err == nil {
			playoutCounter = c
		}
	})
	return playoutCounter
}

// ParallelSearch runs opts.Playouts PUCT simulations against root,
// distributed across opts.Parallelism worker goroutines that each
// operate on their own full copy of root so concurrent DoMove/UndoMove
// calls never race on shared position state (spec §5: the arena's nodes
// are the only state shared across threads, guarded by atomics).
func ParallelSearch(ctx context.Context, a *Arena, root *shogi.Position, eval Evaluator, opts SearchOptions) error {
	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	ctx, span := telemetry.StartSpan(ctx, "mcts.search")
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	work := make(chan struct{}, opts.Playouts)
	for i := 0; i < opts.Playouts; i++ {
		work <- struct{}{}
	}
	close(work)

	for w := 0; w < parallelism; w++ {
		g.Go(func() error {
			for range work {
				if err := ctx.Err(); err != nil {
					return err
				}
				runOnePlayout(ctx, a, root, eval, opts.ForcedPlayouts)
			}
			return nil
		})
	}
	return g.Wait()
}

// runOnePlayout executes one select→evaluate→backpropagate cycle on a
// private copy of root, wrapped in its own span and counted toward the
// total playouts metric.
func runOnePlayout(ctx context.Context, a *Arena, root *shogi.Position, eval Evaluator, forcedPlayouts bool) {
	ctx, span := telemetry.StartSpan(ctx, "mcts.playout")
	defer span.End()

	pos := root.Copy(true)

	leaf, _ := SelectLeaf(a, pos, forcedPlayouts)

	node := a.Node(leaf)
	var value float32
	if node.IsTerminal {
		value = node.TerminalValue
	} else {
		policy, v := eval(pos)
		value = Evaluate(a, leaf, pos, policy, v)
	}

	Backpropagate(a, leaf, value)

	if counter := playoutsTotal(); counter != nil {
		counter.Add(ctx, 1)
	}
}
