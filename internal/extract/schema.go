package extract

import (
	"regexp"
	"strings"
)

// Shape describes the expected token form of a field value
type Shape string

const (
	ShapeDigits   Shape = "digits"   // Contiguous digit run
	ShapeDate     Shape = "date"     // Calendar date in the schema's layout
	ShapeMoney    Shape = "money"    // Currency amount, optional thousands separators
	ShapeFreeText Shape = "freetext" // Anything up to the next recognized label
)

// Field is one labeled position in a document schema. The label is
// the anchor text that precedes the value in the document, written
// without its trailing colon.
type Field struct {
	Name     string
	Label    string
	Shape    Shape
	Optional bool // When false, a failed match discards the whole record
}

// Schema declares the ordered fields of one document format. Adding
// a new document format means adding a schema, not a new extraction
// routine.
type Schema struct {
	Name       string
	DateLayout string // Go reference-time layout for ShapeDate fields
	Fields     []Field
}

// Date layouts the extractor knows how to turn into patterns.
const (
	LayoutISO = "2006-01-02"
	LayoutUS  = "01/02/2006"
)

// labelPattern builds a case-insensitive pattern for a field label,
// tolerating arbitrary internal spacing and an optional colon.
func labelPattern(label string) *regexp.Regexp {
	parts := strings.Fields(label)
	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	return regexp.MustCompile(`(?i)` + strings.Join(parts, `\s+`) + `\s*:?\s*`)
}

// valuePattern builds the pattern for a field value, anchored at the
// start of the remaining text. Free text has no value pattern; it is
// bounded by the next label instead.
func valuePattern(shape Shape, dateLayout string) *regexp.Regexp {
	switch shape {
	case ShapeDigits:
		return regexp.MustCompile(`^([0-9]+)`)
	case ShapeDate:
		return regexp.MustCompile(`^(` + dateBody(dateLayout) + `)`)
	case ShapeMoney:
		return regexp.MustCompile(`^\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)
	}
	return nil
}

func dateBody(layout string) string {
	switch layout {
	case LayoutUS:
		return `[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}`
	default:
		// ISO and anything unrecognized: digit groups with dashes.
		return `[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}`
	}
}
