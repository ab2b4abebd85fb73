// Package eligibility applies the ordered appeal eligibility rules
// to joined claims. Evaluation is a total function: every claim gets
// exactly one verdict, regardless of input or configuration.
package eligibility

import (
	"strings"
	"time"

	"github.com/kirthika85/appealgen/internal/model"
)

// Reasons attached to rejection verdicts.
const (
	ReasonUnmatched = "No matching denial found"
	ReasonLate      = "Claim outside appealable timeframe"
	ReasonUncovered = "Service not covered"
)

// Policy holds the eligibility rules for one run. The reference date
// is injected rather than read from the clock so runs are repeatable.
type Policy struct {
	ReferenceDate time.Time
	MaxAppealDays int
	Exclusions    []string // Case-insensitive service phrases
	Basis         model.TimelinessBasis
	UnparsedDates model.UnparsedDatePolicy
}

// Evaluator evaluates joined claims against a policy
type Evaluator struct {
	policy     Policy
	exclusions []string // Pre-lowered
}

// New creates an evaluator for the given policy
func New(policy Policy) *Evaluator {
	lowered := make([]string, 0, len(policy.Exclusions))
	for _, e := range policy.Exclusions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			lowered = append(lowered, e)
		}
	}
	return &Evaluator{policy: policy, exclusions: lowered}
}

// Evaluate applies the rules in order; the first rule that fires
// decides the claim and later rules are not consulted.
//
//  1. unmatched claim -> rejected, no denial to appeal against
//  2. claim older than the appeal window -> rejected late
//  3. service matches a coverage exclusion -> rejected uncovered
//  4. otherwise eligible
func (ev *Evaluator) Evaluate(j model.JoinedClaim) model.Verdict {
	if j.Status == model.MatchUnmatched {
		return model.Verdict{Code: model.VerdictRejectedUnmatched, Reason: ReasonUnmatched}
	}

	if late, reason := ev.isLate(j); late {
		return model.Verdict{Code: model.VerdictRejectedLate, Reason: reason}
	}

	if ev.isExcluded(j.Claim.ServiceDescription) {
		return model.Verdict{Code: model.VerdictRejectedUncovered, Reason: ReasonUncovered}
	}

	return model.Verdict{Code: model.VerdictEligible}
}

// isLate measures the claim's age against the configured basis date.
// A claim date that never parsed is decided by the unparsed-date
// policy: fail-open treats it as not late, fail-closed rejects it
// with a reason naming the policy, so the rejection is traceable to
// configuration rather than to the document.
func (ev *Evaluator) isLate(j model.JoinedClaim) (bool, string) {
	if j.Claim.ClaimDate.IsZero() {
		if ev.policy.UnparsedDates == model.UnparsedFailClosed {
			return true, ReasonLate + " (claim date unreadable, fail-closed policy)"
		}
		return false, ""
	}

	basis := ev.basisDate(j)
	age := basis.Sub(j.Claim.ClaimDate)
	days := int(age.Hours() / 24)

	if days > ev.policy.MaxAppealDays {
		return true, ReasonLate
	}
	return false, ""
}

// basisDate picks the date the claim's age is measured against.
// Under the denial-date basis, a denial without a readable date
// falls back to the run's reference date.
func (ev *Evaluator) basisDate(j model.JoinedClaim) time.Time {
	if ev.policy.Basis == model.BasisDenialDate && j.Denial != nil && !j.Denial.DenialDate.IsZero() {
		return j.Denial.DenialDate
	}
	return ev.policy.ReferenceDate
}

func (ev *Evaluator) isExcluded(service string) bool {
	lower := strings.ToLower(service)
	for _, phrase := range ev.exclusions {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
