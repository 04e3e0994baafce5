package agent

import (
	"strings"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/graph"
)

// Gate output markers. The validation gate's prompt instructs the model to
// answer with these labeled lines; parsing is deterministic and keyed only
// on them.
const (
	markerValidity     = "VALIDITY:"
	markerCompleteness = "COMPLETENESS:"
	markerMissingInfo  = "MISSING_INFO:"
	markerQuestions    = "QUESTIONS:"
	markerSummary      = "SUMMARY:"
)

// UnparseableReason is the invalid-verdict reason used when the gate output
// carries no recognizable marker.
const UnparseableReason = "unparseable response"

// ParseVerdict parses a validation gate's completion output into a verdict
// using a fixed marker-based rule:
//
//   - VALIDITY answering "Invalid" rejects the request with its reason.
//   - VALIDITY answering "Valid" with COMPLETENESS answering "Incomplete"
//     requests clarification, carrying the MISSING_INFO list and the
//     QUESTIONS text.
//   - VALIDITY "Valid" with COMPLETENESS "Complete" produces a valid verdict
//     with the extracted summary.
//   - Anything else, including a missing or hedged marker ("Not valid",
//     VALIDITY without COMPLETENESS), is an invalid verdict with reason
//     "unparseable response". It is never coerced to valid.
//
// The answer is the first word of the marker value, compared exactly, so a
// negated answer never reads as affirmative.
func ParseVerdict(text string) *graph.Verdict {
	fields := extractMarkers(text)

	validity, ok := fields[markerValidity]
	if !ok {
		return &graph.Verdict{Kind: graph.VerdictInvalid, Reason: UnparseableReason}
	}

	switch markerAnswer(validity) {
	case "invalid":
		reason := strings.TrimSpace(validity)
		if reason == "" {
			reason = "request rejected by validator"
		}
		return &graph.Verdict{Kind: graph.VerdictInvalid, Reason: reason}
	case "valid":
		// proceed to completeness
	default:
		return &graph.Verdict{Kind: graph.VerdictInvalid, Reason: UnparseableReason}
	}

	completeness, ok := fields[markerCompleteness]
	if !ok {
		return &graph.Verdict{Kind: graph.VerdictInvalid, Reason: UnparseableReason}
	}

	switch markerAnswer(completeness) {
	case "incomplete":
		missing := parseList(fields[markerMissingInfo])
		question := strings.TrimSpace(fields[markerQuestions])
		if question == "" || strings.EqualFold(question, "none") {
			question = "Please provide: " + strings.Join(missing, ", ")
		}
		return &graph.Verdict{
			Kind:     graph.VerdictNeedsClarification,
			Missing:  missing,
			Question: question,
		}
	case "complete":
		// proceed to valid
	default:
		return &graph.Verdict{Kind: graph.VerdictInvalid, Reason: UnparseableReason}
	}

	verdict := &graph.Verdict{Kind: graph.VerdictValid, Fields: map[string]string{}}
	if summary := strings.TrimSpace(fields[markerSummary]); summary != "" {
		verdict.Fields["summary"] = summary
	}
	return verdict
}

// markerAnswer extracts the first word of a marker value, lowercased and
// stripped of trailing punctuation, for exact comparison.
func markerAnswer(value string) string {
	words := strings.Fields(value)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimRight(words[0], ".,;:"))
}

// extractMarkers collects the text after each recognized marker line.
// Markers may be prefixed by list bullets ("- VALIDITY: ..."); continuation
// lines belong to the preceding marker.
func extractMarkers(text string) map[string]string {
	markers := []string{markerValidity, markerCompleteness, markerMissingInfo, markerQuestions, markerSummary}
	fields := make(map[string]string)

	current := ""
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*"))
		matched := false
		for _, m := range markers {
			if len(trimmed) >= len(m) && strings.EqualFold(trimmed[:len(m)], m) {
				current = m
				fields[current] = strings.TrimSpace(trimmed[len(m):])
				matched = true
				break
			}
		}
		if !matched && current != "" && strings.TrimSpace(line) != "" {
			fields[current] = strings.TrimSpace(fields[current] + " " + strings.TrimSpace(line))
		}
	}
	return fields
}

// parseList splits a MISSING_INFO value into items, dropping "None".
func parseList(s string) []string {
	var items []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		item := strings.TrimSpace(part)
		if item == "" || strings.EqualFold(item, "none") {
			continue
		}
		items = append(items, item)
	}
	return items
}
