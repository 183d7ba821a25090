package report

import (
	"strings"
	"unicode/utf8"
)

// Text budgets. Three independent windows over the extracted document text:
// the AI window keeps LLM input bounded, the storage window keeps the
// persisted row bounded, and the Q&A window samples head/middle/tail so
// answers can draw on content anywhere in the document.
// Budgets are byte counts; window edges back off to the nearest rune start
// so a cut never leaves invalid UTF-8 (filings mix in symbols like the
// rupee sign).
const (
	InsightHeadChars = 20000
	InsightTailChars = 3000

	StorageMaxChars    = 350000
	StorageWindowChars = 175000

	QAChunkChars = 20000

	// StorageTruncationMarker replaces the dropped middle of oversized documents.
	StorageTruncationMarker = "....(truncated middle)...."
)

// ForInsight returns the leading and trailing windows of the text joined by
// a blank line. Leading text usually carries the highlights, trailing text
// the footnotes and balance-sheet detail. Short inputs overlap; that is
// tolerated rather than deduplicated.
func ForInsight(fullText string) string {
	if fullText == "" {
		return ""
	}

	return headWindow(fullText, InsightHeadChars) + "\n\n" + tailWindow(fullText, InsightTailChars)
}

// ForStorage bounds the text persisted with a report. Inputs at or under
// StorageMaxChars pass through unchanged; larger inputs keep the first and
// last StorageWindowChars around a truncation marker.
func ForStorage(fullText string) string {
	if len(fullText) <= StorageMaxChars {
		return fullText
	}

	var sb strings.Builder
	sb.Grow(2*StorageWindowChars + len(StorageTruncationMarker) + 8)
	sb.WriteString(headWindow(fullText, StorageWindowChars))
	sb.WriteString("\n\n")
	sb.WriteString(StorageTruncationMarker)
	sb.WriteString("\n\n")
	sb.WriteString(tailWindow(fullText, StorageWindowChars))
	return sb.String()
}

// ForQuestionAnswering samples the text for Q&A context. Inputs of up to
// three chunks pass through unchanged; larger inputs keep the first chunk,
// a chunk centered on the midpoint, and the last chunk, joined by blank lines.
func ForQuestionAnswering(fullText string) string {
	if len(fullText) <= 3*QAChunkChars {
		return fullText
	}

	start := headWindow(fullText, QAChunkChars)
	middle := midWindow(fullText, QAChunkChars)
	end := tailWindow(fullText, QAChunkChars)

	return start + "\n\n" + middle + "\n\n" + end
}

// headWindow returns up to n leading bytes of s. A cut that would land
// inside a multi-byte rune backs off to the rune's first byte.
func headWindow(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// tailWindow returns up to n trailing bytes of s, advancing past any
// partial rune at the window's leading edge.
func tailWindow(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := len(s) - n
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return s[i:]
}

// midWindow returns an n-byte window centered on the midpoint of s, both
// edges adjusted to rune boundaries.
func midWindow(s string, n int) string {
	lo := len(s)/2 - n/2
	for lo > 0 && !utf8.RuneStart(s[lo]) {
		lo--
	}
	hi := lo + n
	if hi > len(s) {
		hi = len(s)
	}
	for hi > lo && hi < len(s) && !utf8.RuneStart(s[hi]) {
		hi--
	}
	return s[lo:hi]
}
