// Package sampling picks a few representative example values out of a
// frequency-ranked column sample.
//
// The selection is a best-effort heuristic meant to surface both common and
// moderately common values; it is not a statistically rigorous stratification.
package sampling

import "strings"

// Sampling limits.
const (
	MaxValueLength = 80
	MaxSampleRows  = 10000
	SamplePercent  = 10
	MaxExamples    = 5
)

// TruncationMarker is appended to values cut at MaxValueLength.
const TruncationMarker = "..."

// Separator joins stored example values.
const Separator = " ; "

// lineBreaks flattens stored values onto one line so no sampled line can be
// read back as a comment or field marker of the edit buffer.
var lineBreaks = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\n`)

// flatten replaces line breaks in v with a visible \n escape.
func flatten(v string) string {
	return lineBreaks.Replace(v)
}

// Truncate flattens v, cuts it to MaxValueLength characters and appends
// TruncationMarker.
func Truncate(v string) string {
	v = flatten(v)
	r := []rune(v)
	if len(r) <= MaxValueLength {
		return v
	}
	return string(r[:MaxValueLength]) + TruncationMarker
}

// Select chooses examples from values ranked by descending frequency:
//
//	<= 5 distinct   all of them
//	<  10 distinct  the top 4 plus the rarest
//	otherwise       ranks 1, 3, 5, 7 and 9
//
// Values are truncated before selection.
func Select(ranked []string) []string {
	vals := make([]string, len(ranked))
	for i, v := range ranked {
		vals[i] = Truncate(v)
	}

	switch {
	case len(vals) <= MaxExamples:
		return vals
	case len(vals) < 10:
		return append(vals[:4:4], vals[len(vals)-1])
	default:
		return []string{vals[0], vals[2], vals[4], vals[6], vals[8]}
	}
}

// Join formats examples for the example_vals column.
func Join(examples []string) string {
	return strings.Join(examples, Separator)
}
