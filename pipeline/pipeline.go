// Package pipeline assembles the agent stages into the two runnable
// workflows: case analysis and document drafting. It owns the boundary
// types callers see; graph internals never leak past it.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/agent"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/graph"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/llm"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/log"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/tool"
)

// Stage names of the case analysis workflow.
const (
	StageIntake          = "intake"
	StageStatuteSections = "statute_sections"
	StagePrecedentCases  = "precedent_cases"
	StageAnalysis        = "analysis"
)

// Stage names of the document drafting workflow.
const (
	StageValidation = "validation"
	StageDraft      = "draft"
	StageDocument   = "document"
)

// Pipeline names used for run records.
const (
	PipelineCaseAnalysis     = "case_analysis"
	PipelineDocumentDrafting = "document_drafting"
)

// CaseAnalysis is the result of a completed case analysis run.
type CaseAnalysis struct {
	RunID           string
	IntakeSummary   string
	StatuteSections string
	PrecedentCases  string
	Analysis        string
}

// Clarification asks the user for the details a drafting request is missing.
type Clarification struct {
	Missing  []string
	Question string
}

// DraftResult is the outcome of a document drafting run. Exactly one of
// Document and Clarification is set.
type DraftResult struct {
	RunID         string
	Document      string
	Clarification *Clarification
}

// Failure is the error type returned when a run cannot complete.
type Failure struct {
	RunID    string
	Pipeline string
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("pipeline %s (run %s): %v", f.Pipeline, f.RunID, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// InvalidRequestError reports that the validation gate judged a drafting
// request to be outside the system's scope.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "request rejected: " + e.Reason
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithExecutor replaces the default executor.
func WithExecutor(exec *graph.Executor) Option {
	return func(a *Assistant) { a.exec = exec }
}

// WithRunStore enables best-effort persistence of finished runs.
func WithRunStore(rs store.RunStore) Option {
	return func(a *Assistant) { a.store = rs }
}

// WithLogger replaces the default logger.
func WithLogger(l log.Logger) Option {
	return func(a *Assistant) { a.logger = l }
}

// Assistant binds the agent stages to their collaborators and runs the two
// workflows. It is safe for concurrent use; every run gets its own context.
type Assistant struct {
	exec       *graph.Executor
	caseGraph  *graph.Graph
	draftGraph *graph.Graph
	store      store.RunStore
	logger     log.Logger
}

// New builds an assistant. Both workflow graphs are constructed and
// validated here, so misconfigured stages and unbound tool capabilities
// surface at start-up.
func New(completer llm.Completer, tools *tool.Registry, opts ...Option) (*Assistant, error) {
	a := &Assistant{
		exec:   graph.NewExecutor(graph.ExecutorOptions{}),
		logger: log.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	caseGraph, err := buildGraph(PipelineCaseAnalysis, caseSpecs(), completer, tools)
	if err != nil {
		return nil, err
	}
	draftGraph, err := buildGraph(PipelineDocumentDrafting, draftSpecs(), completer, nil)
	if err != nil {
		return nil, err
	}
	a.caseGraph = caseGraph
	a.draftGraph = draftGraph
	return a, nil
}

// NewDrafting builds an assistant limited to the document drafting workflow.
// The drafting stages use no tools, so no registry, statute corpus, or
// search credentials are needed.
func NewDrafting(completer llm.Completer, opts ...Option) (*Assistant, error) {
	a := &Assistant{
		exec:   graph.NewExecutor(graph.ExecutorOptions{}),
		logger: log.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	draftGraph, err := buildGraph(PipelineDocumentDrafting, draftSpecs(), completer, nil)
	if err != nil {
		return nil, err
	}
	a.draftGraph = draftGraph
	return a, nil
}

// caseSpecs declares the case analysis stages: intake fans out to the two
// research stages, which fan back in to the analysis stage.
func caseSpecs() []agent.Spec {
	return []agent.Spec{
		{
			Name:     StageIntake,
			Upstream: []string{graph.StageInput},
			Role:     roleIntake,
			Template: templateIntake,
		},
		{
			Name:       StageStatuteSections,
			Upstream:   []string{StageIntake},
			Role:       roleStatute,
			Template:   templateStatute,
			Capability: tool.CapabilityStatuteRetrieval,
		},
		{
			Name:       StagePrecedentCases,
			Upstream:   []string{StageIntake},
			Role:       rolePrecedent,
			Template:   templatePrecedent,
			Capability: tool.CapabilityCaseLawSearch,
		},
		{
			Name:     StageAnalysis,
			Upstream: []string{StageIntake, StageStatuteSections, StagePrecedentCases},
			Role:     roleAnalysis,
			Template: templateAnalysis,
		},
	}
}

// draftSpecs declares the document drafting stages. The validation stage is
// a gate: a non-valid verdict halts the run before any drafting happens.
func draftSpecs() []agent.Spec {
	return []agent.Spec{
		{
			Name:     StageValidation,
			Upstream: []string{graph.StageInput},
			Role:     roleValidator,
			Template: templateValidator,
			Gate:     true,
		},
		{
			Name:     StageAnalysis,
			Upstream: []string{graph.StageInput, StageValidation},
			Role:     roleAnalyzer,
			Template: templateAnalyzer,
		},
		{
			Name:     StageDraft,
			Upstream: []string{graph.StageInput, StageAnalysis},
			Role:     roleDrafter,
			Template: templateDrafter,
		},
		{
			Name:     StageDocument,
			Upstream: []string{StageDraft},
			Role:     roleFormatter,
			Template: templateFormatter,
		},
	}
}

func buildGraph(name string, specs []agent.Spec, completer llm.Completer, tools *tool.Registry) (*graph.Graph, error) {
	nodes := make([]graph.Node, 0, len(specs))
	for _, s := range specs {
		node, err := s.Bind(completer, tools)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", name, err)
		}
		nodes = append(nodes, node)
	}
	g, err := graph.New(name, nodes)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}
	return g, nil
}

// RunCaseAnalysis runs the full case analysis workflow over a plain-English
// description of a legal issue.
func (a *Assistant) RunCaseAnalysis(ctx context.Context, issue string) (*CaseAnalysis, error) {
	if a.caseGraph == nil {
		return nil, fmt.Errorf("case analysis workflow not configured")
	}
	rc, err := a.exec.Run(ctx, a.caseGraph, issue)
	a.record(ctx, PipelineCaseAnalysis, rc)
	if err != nil {
		return nil, &Failure{RunID: rc.RunID(), Pipeline: PipelineCaseAnalysis, Err: err}
	}

	res := &CaseAnalysis{RunID: rc.RunID()}
	res.IntakeSummary, _ = rc.Output(StageIntake)
	res.StatuteSections, _ = rc.Output(StageStatuteSections)
	res.PrecedentCases, _ = rc.Output(StagePrecedentCases)
	res.Analysis, _ = rc.Output(StageAnalysis)
	return res, nil
}

// RunDocumentDrafting runs the document drafting workflow. When the
// validation gate finds the request incomplete, the result carries a
// clarification request instead of a document; a request the gate judges
// invalid is returned as an InvalidRequestError.
func (a *Assistant) RunDocumentDrafting(ctx context.Context, request string) (*DraftResult, error) {
	rc, err := a.exec.Run(ctx, a.draftGraph, request)
	a.record(ctx, PipelineDocumentDrafting, rc)
	if err != nil {
		return nil, &Failure{RunID: rc.RunID(), Pipeline: PipelineDocumentDrafting, Err: err}
	}

	if rc.Status() == graph.StatusHalted {
		v := rc.Verdict()
		switch v.Kind {
		case graph.VerdictNeedsClarification:
			return &DraftResult{
				RunID: rc.RunID(),
				Clarification: &Clarification{
					Missing:  v.Missing,
					Question: v.Question,
				},
			}, nil
		default:
			return nil, &Failure{
				RunID:    rc.RunID(),
				Pipeline: PipelineDocumentDrafting,
				Err:      &InvalidRequestError{Reason: v.Reason},
			}
		}
	}

	doc, _ := rc.Output(StageDocument)
	return &DraftResult{RunID: rc.RunID(), Document: doc}, nil
}

// record persists a finished run. Persistence is best effort; a store
// failure is logged and never fails the run.
func (a *Assistant) record(ctx context.Context, pipeline string, rc *graph.RunContext) {
	if a.store == nil || rc == nil {
		return
	}
	rec := &store.RunRecord{
		RunID:      rc.RunID(),
		Pipeline:   pipeline,
		Status:     string(rc.Status()),
		Outputs:    rc.Outputs(),
		StartedAt:  rc.StartedAt(),
		FinishedAt: time.Now(),
	}
	if err := a.store.Save(ctx, rec); err != nil {
		a.logger.Warn("run %s: persisting record: %v", rc.RunID(), err)
	}
}
