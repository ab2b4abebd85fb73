package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/kirthika85/appealgen/internal/model"
)

// Field names shared by the built-in schemas and their consumers.
const (
	FieldClaimNumber = "claim_number"
	FieldServiceDesc = "service_description"
	FieldAmount      = "amount_billed"
	FieldClaimDate   = "claim_date"
	FieldDenialDate  = "denial_date"
	FieldReason      = "denial_reason"
)

// BenefitsSchema describes one claim row in a benefits statement.
// Only the claim number is required; every other field degrades to
// its default when the document is missing or mangling it.
func BenefitsSchema(dateLayout string) Schema {
	return Schema{
		Name:       "benefits",
		DateLayout: dateLayout,
		Fields: []Field{
			{Name: FieldClaimNumber, Label: "Claim Number", Shape: ShapeDigits},
			{Name: FieldServiceDesc, Label: "Service Description", Shape: ShapeFreeText, Optional: true},
			{Name: FieldAmount, Label: "Amount Billed", Shape: ShapeMoney, Optional: true},
			{Name: FieldClaimDate, Label: "Claim Date", Shape: ShapeDate, Optional: true},
		},
	}
}

// DenialSchema describes one claim row in a denial notice. The two
// documents are structurally unrelated, so they get independent
// schemas rather than variants of one.
func DenialSchema(dateLayout string) Schema {
	return Schema{
		Name:       "denial",
		DateLayout: dateLayout,
		Fields: []Field{
			{Name: FieldClaimNumber, Label: "Claim Number", Shape: ShapeDigits},
			{Name: FieldDenialDate, Label: "Denial Date", Shape: ShapeDate, Optional: true},
			{Name: FieldReason, Label: "Reason for Denial", Shape: ShapeFreeText, Optional: true},
		},
	}
}

// ClaimRecords extracts benefit claim rows from normalized benefits
// text. Rows without a claim number are discarded, not retained with
// a placeholder. Date and amount parse failures keep the raw text
// and leave the typed field at its zero value.
func (e *Extractor) ClaimRecords(text string, dateLayout string) []model.ClaimRecord {
	recs := e.Extract(text, BenefitsSchema(dateLayout))

	out := make([]model.ClaimRecord, 0, len(recs))
	for _, r := range recs {
		cr := model.ClaimRecord{
			ClaimNumber:        r[FieldClaimNumber],
			ServiceDescription: r[FieldServiceDesc],
			RawAmount:          r[FieldAmount],
			RawClaimDate:       r[FieldClaimDate],
		}
		if cr.ClaimNumber == "" {
			continue
		}
		if cents, ok := ParseMoneyCents(cr.RawAmount); ok {
			cr.AmountCents = cents
		}
		if d, err := time.Parse(dateLayout, cr.RawClaimDate); err == nil {
			cr.ClaimDate = d
		}
		out = append(out, cr)
	}
	return out
}

// DenialRecords extracts denial rows from normalized denial text.
// A row with no readable reason gets the sentinel reason rather than
// being dropped; a missing denial date is valid.
func (e *Extractor) DenialRecords(text string, dateLayout string) []model.DenialRecord {
	recs := e.Extract(text, DenialSchema(dateLayout))

	out := make([]model.DenialRecord, 0, len(recs))
	for _, r := range recs {
		dr := model.DenialRecord{
			ClaimNumber:  r[FieldClaimNumber],
			DenialReason: r[FieldReason],
		}
		if dr.ClaimNumber == "" {
			continue
		}
		if dr.DenialReason == "" {
			dr.DenialReason = model.ReasonNotFound
		}
		if d, err := time.Parse(dateLayout, r[FieldDenialDate]); err == nil {
			dr.DenialDate = d
		}
		out = append(out, dr)
	}
	return out
}

// ParseMoneyCents parses a currency amount like "5,000.00" or "$120"
// into integer cents. Returns false for anything it cannot read.
func ParseMoneyCents(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, false
	}
	cents := dollars * 100

	if hasFrac && frac != "" {
		if len(frac) == 1 {
			frac += "0"
		}
		if len(frac) > 2 {
			frac = frac[:2]
		}
		c, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, false
		}
		cents += c
	}

	return cents, true
}

// FormatCents renders integer cents as a dollar string for prompts
// and reports ("500000" cents -> "$5,000.00").
func FormatCents(cents int64) string {
	dollars := cents / 100
	rem := cents % 100

	// Insert thousands separators right to left.
	digits := strconv.FormatInt(dollars, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	return "$" + b.String() + "." + twoDigits(rem)
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
