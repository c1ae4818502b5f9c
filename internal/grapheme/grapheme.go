// Package grapheme splits a string into extended grapheme clusters
// (UAX #29), used by the for-loop's string-iteration admission rule
// (spec.md §4.4 "identifier pattern + string -> iterate by Unicode
// grapheme clusters (extended)"). No package anywhere in the retrieval
// pack implements this segmentation — golang.org/x/text ships encoding,
// transform, language and message tables but no grapheme-cluster
// segmenter — so this is a deliberate standard-library exception,
// recorded in DESIGN.md.
package grapheme

import "unicode"

// Split returns s's extended grapheme clusters in order. It implements
// the common-case UAX #29 boundary rules: a boundary never falls between
// a base rune and a following combining mark, between the two halves of
// a CRLF pair, or inside a zero-width-joiner sequence (e.g. emoji ZWJ
// sequences); every other rune boundary is a cluster boundary.
func Split(s string) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	var out []string
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && !isBoundary(runes[i-1], runes[i]) {
			continue
		}
		out = append(out, string(runes[start:i]))
		start = i
	}
	return out
}

const zeroWidthJoiner = '‍'

func isBoundary(prev, next rune) bool {
	if prev == '\r' && next == '\n' {
		return false
	}
	if prev == zeroWidthJoiner || next == zeroWidthJoiner {
		return false
	}
	if isMark(next) {
		return false
	}
	return true
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Mc, r)
}
