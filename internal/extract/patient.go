package extract

import (
	"regexp"
	"strings"

	"github.com/kirthika85/appealgen/internal/model"
)

// patientField ties a profile label to its placeholder fallback
type patientField struct {
	label       string
	placeholder string
	re          *regexp.Regexp
}

var patientFields = []patientField{
	{label: "Patient Name", placeholder: model.PlaceholderName},
	{label: "Date of Birth", placeholder: model.PlaceholderDOB},
	{label: "Policy Number", placeholder: model.PlaceholderPolicy},
	{label: "Address", placeholder: model.PlaceholderAddress},
}

func init() {
	for i := range patientFields {
		patientFields[i].re = labelPattern(patientFields[i].label)
	}
}

// ExtractPatient pulls identity fields from normalized clinical
// record text. Each field is located independently by its own
// label-anchored pattern; a missing label yields that field's
// placeholder, never an error. Partial profiles are expected.
func (e *Extractor) ExtractPatient(text string) model.PatientProfile {
	values := make([]string, len(patientFields))
	for i, pf := range patientFields {
		values[i] = extractLabeledValue(text, i, pf)
	}

	return model.PatientProfile{
		Name:         values[0],
		DateOfBirth:  values[1],
		PolicyNumber: values[2],
		Address:      values[3],
	}
}

// maxPatientValueLen caps a labeled value when no other label bounds
// it. Normalization collapses line breaks, so without a cap the last
// field would swallow the rest of the clinical narrative.
const maxPatientValueLen = 100

// genericLabelRe recognizes any "Some Label:" shape so a value stops
// at the next labeled section even when that label is not one of the
// four patient fields (e.g. "History:" in a clinical record).
var genericLabelRe = regexp.MustCompile(`\b[A-Z][A-Za-z]*(?:\s+[A-Za-z]+){0,3}\s*:`)

// extractLabeledValue returns the text between a field's label and
// the next recognized patient label, or the placeholder when the
// label is absent or its value is empty.
func extractLabeledValue(text string, current int, pf patientField) string {
	m := pf.re.FindStringIndex(text)
	if m == nil {
		return pf.placeholder
	}
	rest := text[m[1]:]

	end := len(rest)
	for i, other := range patientFields {
		if i == current {
			continue
		}
		if om := other.re.FindStringIndex(rest); om != nil && om[0] < end {
			end = om[0]
		}
	}
	if gm := genericLabelRe.FindStringIndex(rest); gm != nil && gm[0] > 0 && gm[0] < end {
		end = gm[0]
	}

	value := strings.TrimSpace(rest[:end])
	if len(value) > maxPatientValueLen {
		value = truncateAtToken(value, maxPatientValueLen)
	}
	if value == "" {
		return pf.placeholder
	}
	return value
}

// truncateAtToken cuts a string at the last whole token within limit.
func truncateAtToken(s string, limit int) string {
	cut := s[:limit]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;")
}
