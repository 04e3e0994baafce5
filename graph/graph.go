// Package graph implements the task graph executor at the core of the legal
// assistant: a static, acyclic set of named stages with declared upstream
// dependencies, executed with ready-set scheduling so independent stages run
// concurrently and a dependent stage waits for all of its upstreams.
package graph

import (
	"context"
	"errors"
	"fmt"
)

// StageInput is the reserved stage name for the caller's raw input. The
// executor writes it before scheduling, so entry nodes declare it as their
// only upstream.
const StageInput = "input"

var (
	// ErrDuplicateStage is returned when two nodes declare the same name.
	ErrDuplicateStage = errors.New("duplicate stage name")

	// ErrUnknownUpstream is returned when a node depends on an undeclared stage.
	ErrUnknownUpstream = errors.New("unknown upstream stage")

	// ErrCycle is returned when the declared dependencies contain a cycle.
	ErrCycle = errors.New("dependency cycle")

	// ErrDuplicateWrite is returned when a stage output would be written twice
	// within one run. The executor's scheduling makes this unreachable; the
	// check guards the invariant anyway.
	ErrDuplicateWrite = errors.New("stage output already written")
)

// Output is the result of one node execution. Payload is the stage output
// stored in the run context. Verdict is set only by a validation gate and
// drives the executor's proceed/halt decision.
type Output struct {
	Payload string
	Verdict *Verdict
}

// Node is one stage of a pipeline: a name, its declared upstream stages, and
// the function that produces its output. Node values are static
// configuration, constructed once at process start and shared read-only
// across concurrent runs.
type Node struct {
	// Name is the stage name this node writes.
	Name string

	// Upstream lists the stage names whose outputs this node reads. The
	// executor passes exactly these outputs to Run; nothing else is visible.
	Upstream []string

	// Run produces the stage output from the upstream outputs.
	Run func(ctx context.Context, inputs map[string]string) (Output, error)
}

// Graph is a validated, immutable task graph.
type Graph struct {
	name  string
	nodes []Node
}

// New validates the node set and returns a graph. Validation failures are
// configuration errors: they happen at process start, never at run time.
func New(name string, nodes []Node) (*Graph, error) {
	byName := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		if n.Name == "" {
			return nil, fmt.Errorf("graph %s: node with empty name", name)
		}
		if n.Name == StageInput {
			return nil, fmt.Errorf("graph %s: %w: %q is reserved", name, ErrDuplicateStage, StageInput)
		}
		if _, ok := byName[n.Name]; ok {
			return nil, fmt.Errorf("graph %s: %w: %s", name, ErrDuplicateStage, n.Name)
		}
		if n.Run == nil {
			return nil, fmt.Errorf("graph %s: node %s has no run function", name, n.Name)
		}
		byName[n.Name] = n
	}

	for _, n := range nodes {
		for _, up := range n.Upstream {
			if up == StageInput {
				continue
			}
			if _, ok := byName[up]; !ok {
				return nil, fmt.Errorf("graph %s: node %s: %w: %s", name, n.Name, ErrUnknownUpstream, up)
			}
		}
	}

	if err := checkAcyclic(name, nodes); err != nil {
		return nil, err
	}

	return &Graph{name: name, nodes: nodes}, nil
}

// Name returns the graph's name.
func (g *Graph) Name() string {
	return g.name
}

// Nodes returns the graph's nodes.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// checkAcyclic runs Kahn's algorithm over the declared dependencies.
func checkAcyclic(name string, nodes []Node) error {
	indegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string, len(nodes))

	for _, n := range nodes {
		deg := 0
		for _, up := range n.Upstream {
			if up == StageInput {
				continue
			}
			deg++
			dependents[up] = append(dependents[up], n.Name)
		}
		indegree[n.Name] = deg
	}

	var queue []string
	for stage, deg := range indegree {
		if deg == 0 {
			queue = append(queue, stage)
		}
	}

	visited := 0
	for len(queue) > 0 {
		stage := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range dependents[stage] {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited != len(nodes) {
		return fmt.Errorf("graph %s: %w", name, ErrCycle)
	}
	return nil
}
