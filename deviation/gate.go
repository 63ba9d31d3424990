package deviation

import (
	"fmt"
	"strings"
)

// GateResult is the outcome of evaluating a registry for release: Passed
// is false if any gate below failed.
type GateResult struct {
	Passed   bool
	Failures []string
	Warnings []string
	Summary  string
}

// Evaluate runs four gates against registry, in order:
//
//  1. structural validity (Validate's errors, prefixed "Registry error:")
//  2. no Rejected entry may remain in the registry
//  3. no Proposed entry may remain unresolved
//  4. every Approved entry must carry at least one linked scenario, so its
//     stability claim is actually exercised by something
func Evaluate(registry []Deviation) GateResult {
	validated := Validate(registry)

	var failures []string
	for _, e := range validated.Errors {
		failures = append(failures, "Registry error: "+e)
	}

	for _, d := range registry {
		if d.Status == Rejected {
			failures = append(failures, fmt.Sprintf("%s: REJECTED — adapter must be fixed to match expected behavior (%s)", d.ID, d.Title))
		}
	}
	for _, d := range registry {
		if d.Status == Proposed {
			failures = append(failures, fmt.Sprintf("%s: PROPOSED — requires governance decision before release (%s)", d.ID, d.Title))
		}
	}
	for _, d := range registry {
		if d.Status == Approved && len(d.LinkedScenarios) == 0 {
			failures = append(failures, fmt.Sprintf("%s: APPROVED deviation has no linked scenarios — cannot verify stability", d.ID))
		}
	}

	summary := fmt.Sprintf(
		"Release gate %s: %d approved, %d proposed, %d not-deviation, %d rejected, %d error(s)",
		passFailWord(len(failures) == 0),
		validated.ApprovedCount, validated.ProposedCount, validated.NotADeviationCount, validated.RejectedCount,
		len(failures),
	)

	return GateResult{
		Passed:   len(failures) == 0,
		Failures: failures,
		Warnings: validated.Warnings,
		Summary:  summary,
	}
}

func passFailWord(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}

// FailureReport renders a GateResult as a human-readable report: the
// summary line, followed by a numbered failure list and a warnings
// section when the gate did not pass, or a clean "no blocking issues" line
// when it did.
func FailureReport(result GateResult) string {
	var b strings.Builder
	b.WriteString(result.Summary)
	if result.Passed {
		b.WriteString("\nNo blocking issues.")
		return b.String()
	}
	b.WriteString("\n")
	for i, f := range result.Failures {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f)
	}
	if len(result.Warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, w := range result.Warnings {
			b.WriteString("- " + w + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
