package graph

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of one run.
type Status string

const (
	// StatusRunning means the executor is still scheduling nodes.
	StatusRunning Status = "running"

	// StatusCompleted means every node produced its output.
	StatusCompleted Status = "completed"

	// StatusFailed means a node failed permanently (or exhausted retries).
	StatusFailed Status = "failed"

	// StatusHalted means a validation gate stopped the run with a
	// needs-clarification or invalid verdict.
	StatusHalted Status = "halted"
)

// RunContext is the per-run, write-once-per-key store of stage outputs. It
// is owned by the executor for the duration of the run; each stage name is
// written at most once, so concurrent node completions never target the same
// key.
type RunContext struct {
	runID     string
	graphName string
	startedAt time.Time

	mu      sync.Mutex
	outputs map[string]string
	status  Status
	verdict *Verdict
	failure error
}

func newRunContext(graphName, input string) *RunContext {
	return &RunContext{
		runID:     uuid.NewString(),
		graphName: graphName,
		startedAt: time.Now(),
		outputs:   map[string]string{StageInput: input},
		status:    StatusRunning,
	}
}

// RunID returns the unique identifier of this run.
func (rc *RunContext) RunID() string {
	return rc.runID
}

// GraphName returns the name of the graph this run executed.
func (rc *RunContext) GraphName() string {
	return rc.graphName
}

// StartedAt returns the run's start time.
func (rc *RunContext) StartedAt() time.Time {
	return rc.startedAt
}

// Status returns the run's current status.
func (rc *RunContext) Status() Status {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.status
}

// Verdict returns the gate verdict that halted the run, if any.
func (rc *RunContext) Verdict() *Verdict {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.verdict
}

// Err returns the failure that ended the run, if any.
func (rc *RunContext) Err() error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.failure
}

// Output returns the payload a stage wrote during this run.
func (rc *RunContext) Output(stage string) (string, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	payload, ok := rc.outputs[stage]
	return payload, ok
}

// Outputs returns a copy of all stage outputs written so far.
func (rc *RunContext) Outputs() map[string]string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make(map[string]string, len(rc.outputs))
	for k, v := range rc.outputs {
		out[k] = v
	}
	return out
}

// slice returns the read-only projection of the context limited to the given
// stage names. Nodes see only their declared upstream outputs.
func (rc *RunContext) slice(stages []string) (map[string]string, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	out := make(map[string]string, len(stages))
	for _, stage := range stages {
		payload, ok := rc.outputs[stage]
		if !ok {
			return nil, fmt.Errorf("stage %s has no output yet", stage)
		}
		out[stage] = payload
	}
	return out, nil
}

// setOutput writes a stage output exactly once.
func (rc *RunContext) setOutput(stage, payload string) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if _, ok := rc.outputs[stage]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateWrite, stage)
	}
	rc.outputs[stage] = payload
	return nil
}

func (rc *RunContext) setStatus(s Status) {
	rc.mu.Lock()
	rc.status = s
	rc.mu.Unlock()
}

// recordVerdict stores a valid gate verdict for later inspection without
// changing the run status.
func (rc *RunContext) recordVerdict(v *Verdict) {
	rc.mu.Lock()
	rc.verdict = v
	rc.mu.Unlock()
}

func (rc *RunContext) setHalted(v *Verdict) {
	rc.mu.Lock()
	rc.status = StatusHalted
	rc.verdict = v
	rc.mu.Unlock()
}

func (rc *RunContext) setFailed(err error) {
	rc.mu.Lock()
	rc.status = StatusFailed
	rc.failure = err
	rc.mu.Unlock()
}
