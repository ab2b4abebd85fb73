// Package match correlates benefit claims with denial records by
// claim number.
package match

import "github.com/kirthika85/appealgen/internal/model"

// Matcher joins claim records against denial records
type Matcher struct{}

// New creates a new matcher
func New() *Matcher {
	return &Matcher{}
}

// Match produces one joined record per distinct claim number, in
// claim input order. Matching is exact string equality on the claim
// number; the first denial in document order wins for a given key.
// A claim with no denial is joined as unmatched, which is a valid
// terminal state, not an error. Denials with no corresponding claim
// are dropped: denials are only ever consumed through this join.
func (m *Matcher) Match(claims []model.ClaimRecord, denials []model.DenialRecord) []model.JoinedClaim {
	// First denial per key. Later denials for the same key never
	// shadow the first, so reorderings that preserve first-occurrence
	// order per key produce identical output.
	firstDenial := make(map[string]model.DenialRecord, len(denials))
	for _, d := range denials {
		if _, ok := firstDenial[d.ClaimNumber]; !ok {
			firstDenial[d.ClaimNumber] = d
		}
	}

	seen := make(map[string]bool, len(claims))
	joined := make([]model.JoinedClaim, 0, len(claims))

	for _, c := range claims {
		// A claim number appearing twice is processed only at its
		// first occurrence.
		if seen[c.ClaimNumber] {
			continue
		}
		seen[c.ClaimNumber] = true

		if d, ok := firstDenial[c.ClaimNumber]; ok {
			denial := d
			joined = append(joined, model.JoinedClaim{
				Claim:  c,
				Denial: &denial,
				Status: model.MatchMatched,
			})
			continue
		}

		joined = append(joined, model.JoinedClaim{
			Claim:  c,
			Status: model.MatchUnmatched,
		})
	}

	return joined
}
