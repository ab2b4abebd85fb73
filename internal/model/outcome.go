package model

import "time"

// VerdictCode is the eligibility decision for one joined claim
type VerdictCode string

const (
	VerdictEligible          VerdictCode = "eligible"           // Proceed to appeal generation
	VerdictRejectedUnmatched VerdictCode = "rejected_unmatched" // No denial shares the claim number
	VerdictRejectedLate      VerdictCode = "rejected_late"      // Outside the appealable timeframe
	VerdictRejectedUncovered VerdictCode = "rejected_uncovered" // Service hit a coverage exclusion
)

// Verdict is the terminal eligibility result for a claim
type Verdict struct {
	Code   VerdictCode `json:"code"`
	Reason string      `json:"reason,omitempty"` // Empty for eligible claims
}

// Eligible reports whether the claim should proceed to generation
func (v Verdict) Eligible() bool {
	return v.Code == VerdictEligible
}

// OutcomeStatus records whether an appeal letter went out for a claim
type OutcomeStatus string

const (
	StatusSent    OutcomeStatus = "sent"
	StatusNotSent OutcomeStatus = "not_sent"
)

// AppealOutcome is the final per-claim result row. Exactly one per
// distinct claim number per run, never updated after creation.
type AppealOutcome struct {
	ClaimNumber  string        `json:"claim_number"`
	ClaimDate    string        `json:"claim_date,omitempty"` // As it appeared in the source
	PatientName  string        `json:"patient_name"`
	PolicyNumber string        `json:"policy_number,omitempty"`
	Status       OutcomeStatus `json:"status"`
	Reason       string        `json:"reason,omitempty"` // Empty when Status is StatusSent
	Letter       string        `json:"-"`                // Generated letter text; rendered separately
}

// RunReport is the aggregate of one processing run
type RunReport struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Patient     PatientProfile    `json:"patient"`
	Outcomes    []AppealOutcome   `json:"outcomes"` // First-seen claim order
	Letters     map[string]string `json:"-"`        // claim number -> letter, sent claims only
	ClaimsFound int               `json:"claims_found"`
	SentCount   int               `json:"sent_count"`
}
