// Package normalize repairs text that came out of a layout-to-text
// conversion: run-on whitespace, labels glued to values, and words
// merged across line breaks. The passes are lossy heuristics and
// their order matters; each pass operates on the output of the one
// before it.
package normalize

import (
	"strings"
	"unicode"
)

// longTokenLen is the length at which an unbroken token is assumed
// to be two or more merged words.
const longTokenLen = 20

// camelRunLen is the minimum lowercase run before an uppercase letter
// that triggers a word-boundary split.
const camelRunLen = 3

// Normalize cleans raw extracted text into a canonical single-spaced
// form. It never fails; an empty input yields an empty output.
//
// Pass order (fixed):
//  1. collapse whitespace runs to single spaces, trim
//  2. insert a space after a colon not followed by whitespace
//  3. insert spaces at letter<->digit boundaries
//  4. split tokens >=20 chars at every lower->upper boundary inside
//     them (they almost certainly merge multiple words)
//  5. split a lowercase run of >=3 letters followed by an uppercase
//     letter in the remaining text
//
// The long-token pass runs before the camel pass: the camel pass
// would otherwise shorten a merged token below the length threshold
// while leaving part of it glued.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := collapseWhitespace(raw)
	text = spaceAfterColon(text)
	text = splitLetterDigit(text)
	text = splitLongTokens(text)
	text = splitCamelRuns(text)

	return strings.TrimSpace(text)
}

// collapseWhitespace reduces any whitespace run (including newlines
// left by page layout) to a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// spaceAfterColon fixes "Claim Number:1001" style label gluing.
func spaceAfterColon(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)

	runes := []rune(s)
	for i, r := range runes {
		b.WriteRune(r)
		if r == ':' && i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// splitLetterDigit inserts a space between a letter and a digit in
// either direction ("Claim1001" -> "Claim 1001", "1001Service" ->
// "1001 Service").
func splitLetterDigit(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)

	var prev rune
	for i, r := range s {
		if i > 0 {
			letterThenDigit := unicode.IsLetter(prev) && unicode.IsDigit(r)
			digitThenLetter := unicode.IsDigit(prev) && unicode.IsLetter(r)
			if letterThenDigit || digitThenLetter {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// splitCamelRuns breaks "billedAmount" style merges: a run of at
// least camelRunLen lowercase letters directly followed by an
// uppercase letter gets a space at the boundary.
func splitCamelRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)

	lowerRun := 0
	for _, r := range s {
		if unicode.IsUpper(r) && lowerRun >= camelRunLen {
			b.WriteRune(' ')
		}
		if unicode.IsLower(r) {
			lowerRun++
		} else {
			lowerRun = 0
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitLongTokens handles tokens the earlier passes left unbroken.
// A token of longTokenLen or more characters with no separator almost
// certainly merges two words; any lower->upper boundary inside it is
// split regardless of run length.
func splitLongTokens(s string) string {
	tokens := strings.Split(s, " ")
	for i, tok := range tokens {
		if len(tok) < longTokenLen {
			continue
		}
		tokens[i] = splitAnyCamel(tok)
	}
	return strings.Join(tokens, " ")
}

func splitAnyCamel(tok string) string {
	var b strings.Builder
	b.Grow(len(tok) + 4)

	var prev rune
	for i, r := range tok {
		if i > 0 && unicode.IsLower(prev) && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
