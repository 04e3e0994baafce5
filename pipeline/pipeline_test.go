package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store"
	memstore "github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store/memory"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/tool"
)

// scriptedCompleter answers by role, so each stage of a workflow can be
// scripted independently. Unscripted roles echo the role name.
type scriptedCompleter struct {
	replies map[string]string
	errs    map[string]error
}

func (s *scriptedCompleter) Complete(ctx context.Context, role, prompt string) (string, error) {
	if err, ok := s.errs[role]; ok {
		return "", err
	}
	if reply, ok := s.replies[role]; ok {
		return reply, nil
	}
	return "reply from " + role, nil
}

type scriptedTool struct {
	capability string
	result     string
	err        error
}

func (s *scriptedTool) Name() string       { return s.capability }
func (s *scriptedTool) Capability() string { return s.capability }
func (s *scriptedTool) Call(ctx context.Context, query string) (string, error) {
	return s.result, s.err
}

func newTestRegistry(t *testing.T, statuteErr, caselawErr error) *tool.Registry {
	t.Helper()
	tools := tool.NewRegistry()
	require.NoError(t, tools.Register(&scriptedTool{
		capability: tool.CapabilityStatuteRetrieval,
		result:     "Section 378: Theft",
		err:        statuteErr,
	}))
	require.NoError(t, tools.Register(&scriptedTool{
		capability: tool.CapabilityCaseLawSearch,
		result:     "State v. Sharma",
		err:        caselawErr,
	}))
	return tools
}

func TestNew_MissingToolCapability(t *testing.T) {
	_, err := New(&scriptedCompleter{}, tool.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no registered backend")
}

func TestRunCaseAnalysis_CompletesAllStages(t *testing.T) {
	completer := &scriptedCompleter{replies: map[string]string{
		roleIntake:    "criminal matter: theft of a phone",
		roleStatute:   "Section 378 applies",
		rolePrecedent: "State v. Sharma is on point",
		roleAnalysis:  "full analysis",
	}}

	assistant, err := New(completer, newTestRegistry(t, nil, nil))
	require.NoError(t, err)

	res, err := assistant.RunCaseAnalysis(context.Background(), "my phone was stolen")
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "criminal matter: theft of a phone", res.IntakeSummary)
	assert.Equal(t, "Section 378 applies", res.StatuteSections)
	assert.Equal(t, "State v. Sharma is on point", res.PrecedentCases)
	assert.Equal(t, "full analysis", res.Analysis)
}

func TestRunCaseAnalysis_IntakeFailureAbortsEverything(t *testing.T) {
	completer := &scriptedCompleter{errs: map[string]error{
		roleIntake: fault.Permanentf("model rejected the request"),
	}}

	assistant, err := New(completer, newTestRegistry(t, nil, nil))
	require.NoError(t, err)

	_, err = assistant.RunCaseAnalysis(context.Background(), "x")
	require.Error(t, err)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, PipelineCaseAnalysis, failure.Pipeline)
	assert.NotEmpty(t, failure.RunID)
}

func TestRunCaseAnalysis_ToolFailureFailsBranch(t *testing.T) {
	assistant, err := New(&scriptedCompleter{},
		newTestRegistry(t, fault.Permanentf("index unavailable"), nil))
	require.NoError(t, err)

	_, err = assistant.RunCaseAnalysis(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statute_sections")
}

func TestRunDocumentDrafting_ProducesDocument(t *testing.T) {
	completer := &scriptedCompleter{replies: map[string]string{
		roleValidator: "VALIDITY: Valid\nCOMPLETENESS: Complete\nSUMMARY: rental agreement",
		roleAnalyzer:  "DOCUMENT_TYPE: Rental Agreement",
		roleDrafter:   "RENTAL AGREEMENT\n1. Parties ...",
		roleFormatter: "RENTAL AGREEMENT (formatted)",
	}}

	assistant, err := NewDrafting(completer)
	require.NoError(t, err)

	res, err := assistant.RunDocumentDrafting(context.Background(), "draft a rental agreement between Asha Rao and Vikram Mehta, flat in Pune, 25000 INR, 11 months")
	require.NoError(t, err)

	assert.Nil(t, res.Clarification)
	assert.Equal(t, "RENTAL AGREEMENT (formatted)", res.Document)
}

func TestRunDocumentDrafting_IncompleteRequestAsksForClarification(t *testing.T) {
	completer := &scriptedCompleter{replies: map[string]string{
		roleValidator: strings.Join([]string{
			"VALIDITY: Valid",
			"COMPLETENESS: Incomplete",
			"MISSING_INFO: recipient name, notice date",
			"QUESTIONS: Who should receive the notice, and from what date?",
		}, "\n"),
	}}

	assistant, err := NewDrafting(completer)
	require.NoError(t, err)

	res, err := assistant.RunDocumentDrafting(context.Background(), "I need a legal notice")
	require.NoError(t, err)

	require.NotNil(t, res.Clarification)
	assert.Empty(t, res.Document)
	assert.Equal(t, []string{"recipient name", "notice date"}, res.Clarification.Missing)
	assert.Contains(t, res.Clarification.Question, "receive the notice")
}

// contentAwareValidator scripts the validator on the request content itself:
// a bare notice request is judged incomplete, a detailed one complete. The
// non-validator roles fall back to echo replies.
type contentAwareValidator struct{}

func (contentAwareValidator) Complete(ctx context.Context, role, prompt string) (string, error) {
	if role != roleValidator {
		return "reply from " + role, nil
	}
	if strings.Contains(prompt, "Mr. X") {
		return "VALIDITY: Valid\nCOMPLETENESS: Complete\nSUMMARY: demand notice for unpaid rent", nil
	}
	return strings.Join([]string{
		"VALIDITY: Valid",
		"COMPLETENESS: Incomplete",
		"MISSING_INFO: recipient name, subject of the notice",
		"QUESTIONS: Who is the notice for, and what is it about?",
	}, "\n"), nil
}

func TestRunDocumentDrafting_ClarifyThenProceed(t *testing.T) {
	assistant, err := NewDrafting(contentAwareValidator{})
	require.NoError(t, err)
	ctx := context.Background()

	res, err := assistant.RunDocumentDrafting(ctx, "I need a legal notice")
	require.NoError(t, err)
	require.NotNil(t, res.Clarification)
	assert.Contains(t, strings.Join(res.Clarification.Missing, " "), "recipient")

	// A fresh call with the augmented request starts a brand-new run and
	// proceeds past validation.
	res2, err := assistant.RunDocumentDrafting(ctx,
		"Legal notice to Mr. X regarding unpaid rent of 5000, demand payment within 15 days")
	require.NoError(t, err)
	assert.Nil(t, res2.Clarification)
	assert.NotEmpty(t, res2.Document)
	assert.NotEqual(t, res.RunID, res2.RunID)
}

func TestRunDocumentDrafting_InvalidRequestIsRejected(t *testing.T) {
	completer := &scriptedCompleter{replies: map[string]string{
		roleValidator: "VALIDITY: Invalid, this is a cooking question\nCOMPLETENESS: Complete",
	}}

	assistant, err := NewDrafting(completer)
	require.NoError(t, err)

	_, err = assistant.RunDocumentDrafting(context.Background(), "how do I cook biryani?")
	require.Error(t, err)

	var invalid *InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "cooking")
}

func TestRunDocumentDrafting_UnparseableValidatorOutputIsRejected(t *testing.T) {
	completer := &scriptedCompleter{replies: map[string]string{
		roleValidator: "Sure, happy to help!",
	}}

	assistant, err := NewDrafting(completer)
	require.NoError(t, err)

	_, err = assistant.RunDocumentDrafting(context.Background(), "draft something")
	require.Error(t, err)

	var invalid *InvalidRequestError
	require.ErrorAs(t, err, &invalid)
}

func TestRunCaseAnalysis_NotConfiguredOnDraftingAssistant(t *testing.T) {
	assistant, err := NewDrafting(&scriptedCompleter{})
	require.NoError(t, err)

	_, err = assistant.RunCaseAnalysis(context.Background(), "x")
	assert.Error(t, err)
}

func TestRun_RecordsToStore(t *testing.T) {
	rs := memstore.NewMemoryRunStore()
	completer := &scriptedCompleter{replies: map[string]string{
		roleValidator: "VALIDITY: Valid\nCOMPLETENESS: Complete\nSUMMARY: ok",
	}}

	assistant, err := NewDrafting(completer, WithRunStore(rs))
	require.NoError(t, err)

	res, err := assistant.RunDocumentDrafting(context.Background(), "draft a complete request")
	require.NoError(t, err)

	rec, err := rs.Load(context.Background(), res.RunID)
	require.NoError(t, err)
	assert.Equal(t, PipelineDocumentDrafting, rec.Pipeline)
	assert.Equal(t, "completed", rec.Status)
	assert.NotEmpty(t, rec.Outputs[StageDocument])
}

func TestRun_StoreFailureDoesNotFailRun(t *testing.T) {
	completer := &scriptedCompleter{replies: map[string]string{
		roleValidator: "VALIDITY: Valid\nCOMPLETENESS: Complete\nSUMMARY: ok",
	}}

	assistant, err := NewDrafting(completer, WithRunStore(failingStore{}))
	require.NoError(t, err)

	_, err = assistant.RunDocumentDrafting(context.Background(), "draft a complete request")
	assert.NoError(t, err)
}

type failingStore struct{}

func (failingStore) Save(ctx context.Context, record *store.RunRecord) error {
	return assert.AnError
}
func (failingStore) Load(ctx context.Context, runID string) (*store.RunRecord, error) {
	return nil, assert.AnError
}
func (failingStore) List(ctx context.Context, pipeline string) ([]*store.RunRecord, error) {
	return nil, assert.AnError
}
func (failingStore) Delete(ctx context.Context, runID string) error {
	return assert.AnError
}
