package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kirthika85/appealgen/internal/normalize"
)

const benefitsText = `Explanation of Benefits
Claim Number: 1001 Claim Date: 2024-01-05 Service Description: Knee Surgery Amount Billed: $5,000.00
Claim Number: 1002 Claim Date: 2024-01-08 Service Description: Cosmetic Surgery Amount Billed: $2,500.00
Claim Number: 1003 Claim Date: 2024-01-10 Service Description: MRI Scan Amount Billed: $800.00`

const denialText = `Denial Notice
Claim Number: 1001 Reason for Denial: Not medically necessary
Claim Number: 1002 Reason for Denial: Procedure is cosmetic`

func TestExtract_OneRecordPerAnchorOccurrence(t *testing.T) {
	ex := New()
	text := normalize.Normalize(benefitsText)

	recs := ex.Extract(text, BenefitsSchema(LayoutISO))
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}

	wantNumbers := []string{"1001", "1002", "1003"}
	for i, rec := range recs {
		if rec[FieldClaimNumber] != wantNumbers[i] {
			t.Errorf("record %d: claim number %q, want %q", i, rec[FieldClaimNumber], wantNumbers[i])
		}
	}
}

func TestExtract_FreeTextBoundedByNextLabel(t *testing.T) {
	ex := New()
	text := normalize.Normalize(benefitsText)

	recs := ex.Extract(text, BenefitsSchema(LayoutISO))
	if len(recs) == 0 {
		t.Fatal("no records extracted")
	}

	desc := recs[0][FieldServiceDesc]
	if desc != "Knee Surgery" {
		t.Errorf("service description = %q, want %q", desc, "Knee Surgery")
	}
	if strings.Contains(desc, "Amount") || strings.Contains(desc, "Claim") {
		t.Errorf("description leaked into next label: %q", desc)
	}
}

func TestExtract_FieldOrderVariance(t *testing.T) {
	// Same fields, different document order than the schema declares.
	text := normalize.Normalize(`Claim Number: 2001 Amount Billed: $120.00 Claim Date: 2024-02-01 Service Description: X-Ray`)

	ex := New()
	recs := ex.Extract(text, BenefitsSchema(LayoutISO))
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0][FieldServiceDesc] != "X-Ray" {
		t.Errorf("service description = %q", recs[0][FieldServiceDesc])
	}
	if recs[0][FieldAmount] != "120.00" {
		t.Errorf("amount = %q", recs[0][FieldAmount])
	}
}

func TestExtract_EmptyTextYieldsEmptySlice(t *testing.T) {
	ex := New()
	recs := ex.Extract("", BenefitsSchema(LayoutISO))
	if recs == nil || len(recs) != 0 {
		t.Errorf("expected empty slice, got %v", recs)
	}
}

func TestExtract_MissingAnchorValueDiscardsRecord(t *testing.T) {
	// Anchor label present but no digit run after it.
	text := "Claim Number: pending Service Description: Lab Work"

	ex := New()
	recs := ex.Extract(text, BenefitsSchema(LayoutISO))
	if len(recs) != 0 {
		t.Errorf("expected record without claim number to be discarded, got %d", len(recs))
	}
}

func TestClaimRecords_ParsesTypedFields(t *testing.T) {
	ex := New()
	claims := ex.ClaimRecords(normalize.Normalize(benefitsText), LayoutISO)

	if len(claims) != 3 {
		t.Fatalf("expected 3 claims, got %d", len(claims))
	}

	c := claims[0]
	if c.ClaimNumber != "1001" {
		t.Errorf("claim number = %q", c.ClaimNumber)
	}
	if c.AmountCents != 500000 {
		t.Errorf("amount cents = %d, want 500000", c.AmountCents)
	}
	if c.ClaimDate.IsZero() {
		t.Error("claim date should have parsed")
	}
	if got := c.ClaimDate.Format(LayoutISO); got != "2024-01-05" {
		t.Errorf("claim date = %s", got)
	}
}

func TestClaimRecords_UnparseableDateKeptAsRaw(t *testing.T) {
	text := normalize.Normalize(`Claim Number: 3001 Claim Date: 2024-01-05 Service Description: Therapy Amount Billed: $90.00`)

	ex := New()
	// US layout configured but document carries ISO dates: the date
	// pattern misses, the record survives with a zero date.
	claims := ex.ClaimRecords(text, LayoutUS)
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if !claims[0].ClaimDate.IsZero() {
		t.Error("expected zero claim date for mismatched layout")
	}
	if claims[0].ClaimNumber != "3001" {
		t.Errorf("claim number = %q", claims[0].ClaimNumber)
	}
}

func TestClaimRecords_USDateLayout(t *testing.T) {
	text := normalize.Normalize(`Claim Number: 4001 Claim Date: 01/05/2024 Service Description: Imaging Amount Billed: $300`)

	ex := New()
	claims := ex.ClaimRecords(text, LayoutUS)
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if got := claims[0].ClaimDate.Format(LayoutISO); got != "2024-01-05" {
		t.Errorf("claim date = %s, want 2024-01-05", got)
	}
}

func TestDenialRecords_Basic(t *testing.T) {
	ex := New()
	denials := ex.DenialRecords(normalize.Normalize(denialText), LayoutISO)

	if len(denials) != 2 {
		t.Fatalf("expected 2 denials, got %d", len(denials))
	}
	if denials[0].DenialReason != "Not medically necessary" {
		t.Errorf("reason = %q", denials[0].DenialReason)
	}
	if !denials[0].DenialDate.IsZero() {
		t.Error("denial date should be zero when absent")
	}
}

func TestDenialRecords_MissingReasonGetsSentinel(t *testing.T) {
	text := normalize.Normalize(`Claim Number: 1001 Denial Date: 2024-01-12`)

	ex := New()
	denials := ex.DenialRecords(text, LayoutISO)
	if len(denials) != 1 {
		t.Fatalf("expected 1 denial, got %d", len(denials))
	}
	if denials[0].DenialReason != "Reason not found" {
		t.Errorf("reason = %q, want sentinel", denials[0].DenialReason)
	}
	if denials[0].DenialDate.IsZero() {
		t.Error("denial date should have parsed")
	}
}

func TestExtract_GluedLabelsAfterNormalization(t *testing.T) {
	// Layout-to-text output with lost spaces, repaired by Normalize.
	raw := "Claim Number:1001Service Description:Knee SurgeryAmount Billed:$5,000.00Claim Date:2024-01-05"

	ex := New()
	claims := ex.ClaimRecords(normalize.Normalize(raw), LayoutISO)
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if claims[0].ClaimNumber != "1001" {
		t.Errorf("claim number = %q", claims[0].ClaimNumber)
	}
	if claims[0].AmountCents != 500000 {
		t.Errorf("amount cents = %d", claims[0].AmountCents)
	}
}

func TestParseMoneyCents(t *testing.T) {
	tests := []struct {
		in    string
		want  int64
		valid bool
	}{
		{"5,000.00", 500000, true},
		{"$5,000.00", 500000, true},
		{"120", 12000, true},
		{"0.5", 50, true},
		{"1,234,567.89", 123456789, true},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseMoneyCents(tt.in)
			if ok != tt.valid {
				t.Fatalf("valid = %v, want %v", ok, tt.valid)
			}
			if ok && got != tt.want {
				t.Errorf("cents = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{500000, "$5,000.00"},
		{12000, "$120.00"},
		{50, "$0.50"},
		{123456789, "$1,234,567.89"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.cents), func(t *testing.T) {
			if got := FormatCents(tt.cents); got != tt.want {
				t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}
