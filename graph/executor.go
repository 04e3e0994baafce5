package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/log"
)

// ExecutorOptions configures an Executor. Zero values select the defaults.
type ExecutorOptions struct {
	// Workers bounds the number of nodes executing concurrently. Default 4.
	Workers int

	// MaxAttempts is the total number of attempts per node, including the
	// first. Only transient failures are retried. Default 3.
	MaxAttempts int

	// Backoff is the base delay between attempts; attempt n waits n times
	// this long. Default 200ms.
	Backoff time.Duration

	// Logger receives scheduling and retry events. Default is the package
	// logger.
	Logger log.Logger
}

// Executor runs task graphs with ready-set scheduling: every node whose
// upstream stages have all produced output is dispatched concurrently onto a
// bounded worker pool; completions recompute the ready set until no nodes
// remain or the run halts.
type Executor struct {
	workers     int
	maxAttempts int
	backoff     time.Duration
	logger      log.Logger
}

// NewExecutor creates an executor.
func NewExecutor(opts ExecutorOptions) *Executor {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 200 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.GetDefaultLogger()
	}
	return &Executor{
		workers:     opts.Workers,
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.Backoff,
		logger:      opts.Logger,
	}
}

type nodeResult struct {
	name string
	out  Output
	err  error
}

// Run executes the graph to completion, failure, or a gate halt. The
// returned RunContext always carries the run's status; the error is non-nil
// only when the run failed.
//
// Failure propagation: a permanent node failure stops scheduling of new
// nodes, but independent branches already in flight are allowed to finish.
// Their results are discarded.
func (e *Executor) Run(ctx context.Context, g *Graph, input string) (*RunContext, error) {
	rc := newRunContext(g.Name(), input)
	e.logger.Debug("run %s: graph %s started", rc.RunID(), g.Name())

	nodes := g.Nodes()
	results := make(chan nodeResult, len(nodes))
	sem := make(chan struct{}, e.workers)

	completed := map[string]bool{StageInput: true}
	started := make(map[string]bool, len(nodes))
	inFlight := 0
	stopped := false

	dispatchReady := func() {
		for _, n := range nodes {
			if started[n.Name] || completed[n.Name] {
				continue
			}
			ready := true
			for _, up := range n.Upstream {
				if !completed[up] {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}

			inputs, err := rc.slice(n.Upstream)
			if err != nil {
				// Unreachable after readiness check; guard the invariant.
				rc.setFailed(err)
				stopped = true
				return
			}

			started[n.Name] = true
			inFlight++
			node := n
			go func() {
				sem <- struct{}{}
				defer func() { <-sem }()
				out, err := e.runWithRetry(ctx, rc.RunID(), node, inputs)
				results <- nodeResult{name: node.Name, out: out, err: err}
			}()
		}
	}

	dispatchReady()
	for inFlight > 0 {
		res := <-results
		inFlight--

		if stopped {
			// Run already failed or halted; in-flight results are discarded.
			continue
		}

		if res.err != nil {
			e.logger.Error("run %s: node %s failed: %v", rc.RunID(), res.name, res.err)
			rc.setFailed(fmt.Errorf("node %s: %w", res.name, res.err))
			stopped = true
			continue
		}

		if err := rc.setOutput(res.name, res.out.Payload); err != nil {
			rc.setFailed(err)
			stopped = true
			continue
		}
		completed[res.name] = true
		e.logger.Debug("run %s: node %s completed", rc.RunID(), res.name)

		if v := res.out.Verdict; v != nil {
			if v.Kind == VerdictValid {
				rc.recordVerdict(v)
			} else {
				e.logger.Info("run %s: gate %s halted the run: %s", rc.RunID(), res.name, v.Kind)
				rc.setHalted(v)
				stopped = true
				continue
			}
		}

		dispatchReady()
	}

	if !stopped {
		rc.setStatus(StatusCompleted)
		e.logger.Debug("run %s: graph %s completed", rc.RunID(), g.Name())
	}
	return rc, rc.Err()
}

// runWithRetry executes a node with bounded retries on transient failures.
// Permanent failures return immediately; unclassified errors count as
// permanent.
func (e *Executor) runWithRetry(ctx context.Context, runID string, n Node, inputs map[string]string) (Output, error) {
	var lastErr error

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		out, err := safeRun(ctx, n, inputs)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !fault.IsTransient(err) {
			break
		}
		if attempt == e.maxAttempts {
			break
		}

		e.logger.Warn("run %s: node %s attempt %d/%d failed: %v", runID, n.Name, attempt, e.maxAttempts, err)
		select {
		case <-time.After(e.backoff * time.Duration(attempt)):
		case <-ctx.Done():
			return Output{}, ctx.Err()
		}
	}

	return Output{}, lastErr
}

// safeRun executes the node function with panic recovery. A panic is
// reported as a permanent node failure rather than crashing the run.
func safeRun(ctx context.Context, n Node, inputs map[string]string) (out Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in node %s: %v", n.Name, r)
		}
	}()
	return n.Run(ctx, inputs)
}
