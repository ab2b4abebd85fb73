package model

import "time"

// ClaimRecord is one row extracted from the benefits statement
type ClaimRecord struct {
	ClaimNumber        string    `json:"claim_number"`                  // Join key, always non-empty
	ClaimDate          time.Time `json:"claim_date,omitempty"`          // Zero when the date failed to parse
	RawClaimDate       string    `json:"raw_claim_date,omitempty"`      // Matched text, kept for prompts and reports
	ServiceDescription string    `json:"service_description,omitempty"` // Free text up to the next label
	AmountCents        int64     `json:"amount_cents,omitempty"`        // Billed amount in cents; 0 when unparsed
	RawAmount          string    `json:"raw_amount,omitempty"`          // Matched amount text (e.g., "5,000.00")
}

// DenialRecord is one row extracted from the denial notice
type DenialRecord struct {
	ClaimNumber  string    `json:"claim_number"`             // Same key space as ClaimRecord
	DenialDate   time.Time `json:"denial_date,omitempty"`    // Zero when absent or unparsed
	DenialReason string    `json:"denial_reason,omitempty"`  // Defaults to ReasonNotFound
}

// ReasonNotFound is the sentinel for a denial row with no readable reason.
const ReasonNotFound = "Reason not found"

// MatchStatus classifies the result of joining a claim against denials
type MatchStatus string

const (
	MatchMatched   MatchStatus = "matched"   // Exactly one denial joined (first occurrence wins)
	MatchUnmatched MatchStatus = "unmatched" // No denial shares the claim number
)

// JoinedClaim is a benefits claim plus its matched denial, if any.
// Constructed by the matcher and read-only afterwards.
type JoinedClaim struct {
	Claim  ClaimRecord   `json:"claim"`
	Denial *DenialRecord `json:"denial,omitempty"` // Nil when Status is MatchUnmatched
	Status MatchStatus   `json:"status"`
}
