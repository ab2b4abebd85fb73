// Package extract turns normalized document text into structured
// records. One generic routine interprets declarative field schemas;
// the per-document formats live in records.go as data.
package extract

import (
	"regexp"
	"strings"
)

// Record holds the raw matched values of one schema occurrence,
// keyed by field name. Values are untrimmed of meaning: dates and
// amounts are parsed later, so a malformed value stays visible.
type Record map[string]string

// Extractor applies schemas to text
type Extractor struct{}

// New creates a new extractor
func New() *Extractor {
	return &Extractor{}
}

// Extract finds every occurrence of the schema in the text and
// returns one record per occurrence, in document order. The first
// field acts as the record anchor: the text is chunked at each
// anchor-label occurrence and remaining fields are resolved inside
// their chunk. Zero matches yields an empty slice, never an error.
func (e *Extractor) Extract(text string, schema Schema) []Record {
	if strings.TrimSpace(text) == "" || len(schema.Fields) == 0 {
		return []Record{}
	}

	anchorRe := labelPattern(schema.Fields[0].Label)
	locs := anchorRe.FindAllStringIndex(text, -1)

	labelRes := make([]*regexp.Regexp, len(schema.Fields))
	for i, f := range schema.Fields {
		labelRes[i] = labelPattern(f.Label)
	}

	records := make([]Record, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		chunk := text[loc[0]:end]

		rec, ok := e.extractChunk(chunk, schema, labelRes)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return records
}

// extractChunk resolves the schema's fields inside one record chunk.
// The anchor field is matched at the head of the chunk; every other
// field is located independently in the remainder, so documents may
// order their fields differently than the schema declares. A failed
// optional field yields an empty value, a failed required field
// discards the record.
func (e *Extractor) extractChunk(chunk string, schema Schema, labelRes []*regexp.Regexp) (Record, bool) {
	rec := make(Record, len(schema.Fields))

	// Anchor value sits at the head of the chunk, right after the
	// anchor label the chunk was cut at.
	m := labelRes[0].FindStringIndex(chunk)
	if m == nil {
		return nil, false
	}
	body := chunk[m[1]:]

	for i, f := range schema.Fields {
		var valStart int
		if i == 0 {
			valStart = 0
		} else {
			fm := labelRes[i].FindStringIndex(body)
			if fm == nil {
				if !f.Optional {
					return nil, false
				}
				rec[f.Name] = ""
				continue
			}
			valStart = fm[1]
		}

		if f.Shape == ShapeFreeText {
			valEnd := valStart + nextLabelOffset(body[valStart:], schema, i, labelRes)
			rec[f.Name] = strings.TrimSpace(body[valStart:valEnd])
			continue
		}

		vre := valuePattern(f.Shape, schema.DateLayout)
		vm := vre.FindStringSubmatch(body[valStart:])
		if vm == nil {
			if !f.Optional {
				return nil, false
			}
			rec[f.Name] = ""
			continue
		}
		rec[f.Name] = vm[1]
	}

	return rec, true
}

// nextLabelOffset returns the offset of the earliest occurrence of
// any other field's label in the remaining chunk, or the chunk's
// length when none follows. This bounds free-text values without
// lookahead, which the regexp engine does not support.
func nextLabelOffset(rest string, schema Schema, current int, labelRes []*regexp.Regexp) int {
	earliest := len(rest)
	for i := range schema.Fields {
		if i == current {
			continue
		}
		if m := labelRes[i].FindStringIndex(rest); m != nil && m[0] < earliest {
			earliest = m[0]
		}
	}
	return earliest
}
