package normalize

import "testing"

func TestNormalize_Whitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"spaces only", "   \n\t  ", ""},
		{"collapse runs", "Claim   Number:  1001", "Claim Number: 1001"},
		{"newlines", "Claim Number: 1001\nService Description: X-Ray", "Claim Number: 1001 Service Description: X-Ray"},
		{"leading trailing", "  hello world  ", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_ColonGluing(t *testing.T) {
	got := Normalize("Claim Number:1001")
	want := "Claim Number: 1001"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_LetterDigitBoundaries(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Claim1001", "Claim 1001"},
		{"1001Service", "1001 Service"},
		{"Room12Bed3", "Room 12 Bed 3"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_CamelRuns(t *testing.T) {
	// A lowercase run of >=3 letters before an uppercase letter splits.
	got := Normalize("AmountBilledClaim")
	want := "Amount Billed Claim"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Short runs are left alone outside of long tokens.
	got = Normalize("McDonald")
	if got != "McDonald" {
		t.Errorf("short run split: got %q", got)
	}
}

func TestNormalize_LongMergedTokens(t *testing.T) {
	// 20+ chars with no separator: every lower->upper boundary splits,
	// even after short runs.
	in := "ExplanationOfBenefitsStatement"
	want := "Explanation Of Benefits Statement"
	if got := Normalize(in); got != want {
		t.Errorf("got %q, want %q", Normalize(in), want)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	in := "Claim Number:1001ServiceDescription:Knee Surgery"
	once := Normalize(in)
	twice := Normalize(once)
	if once != twice {
		t.Errorf("not idempotent: %q vs %q", once, twice)
	}
}
