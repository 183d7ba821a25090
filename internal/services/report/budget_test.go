package report

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestForInsight_Empty(t *testing.T) {
	assert.Equal(t, "", ForInsight(""))
}

func TestForInsight_ShortTextOverlaps(t *testing.T) {
	got := ForInsight("short report text")
	assert.Equal(t, "short report text\n\nshort report text", got)
}

func TestForInsight_LargeTextWindows(t *testing.T) {
	text := strings.Repeat("a", InsightHeadChars) + strings.Repeat("z", InsightTailChars) + strings.Repeat("m", 5000)
	got := ForInsight(text)

	assert.Len(t, got, InsightHeadChars+2+InsightTailChars)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("a", InsightHeadChars)))
	assert.True(t, strings.HasSuffix(got, strings.Repeat("m", InsightTailChars)))
}

func TestForStorage_SmallPassthrough(t *testing.T) {
	text := strings.Repeat("x", StorageMaxChars)
	assert.Equal(t, text, ForStorage(text))
}

func TestForStorage_LargeTruncatesMiddle(t *testing.T) {
	text := strings.Repeat("a", StorageWindowChars) +
		strings.Repeat("b", 100000) +
		strings.Repeat("c", StorageWindowChars)
	got := ForStorage(text)

	assert.True(t, strings.HasPrefix(got, strings.Repeat("a", StorageWindowChars)))
	assert.True(t, strings.HasSuffix(got, strings.Repeat("c", StorageWindowChars)))
	assert.Contains(t, got, StorageTruncationMarker)
	assert.NotContains(t, got, "b")
	assert.Len(t, got, 2*StorageWindowChars+len(StorageTruncationMarker)+4)
}

func TestForQuestionAnswering_SmallPassthrough(t *testing.T) {
	text := strings.Repeat("x", 3*QAChunkChars)
	assert.Equal(t, text, ForQuestionAnswering(text))
}

func TestForQuestionAnswering_LargeSamplesThreeChunks(t *testing.T) {
	// Distinct content in head, middle, and tail regions.
	n := 10 * QAChunkChars
	text := make([]byte, n)
	for i := range text {
		text[i] = 'x'
	}
	copy(text[0:], "HEAD-MARKER")
	copy(text[n/2-5:], "MID-MARKER")
	copy(text[n-11:], "TAIL-MARKER")

	got := ForQuestionAnswering(string(text))

	assert.Len(t, got, 3*QAChunkChars+4)
	assert.Contains(t, got, "HEAD-MARKER")
	assert.Contains(t, got, "MID-MARKER")
	assert.Contains(t, got, "TAIL-MARKER")
}

func TestBudgets_KeepRuneBoundaries(t *testing.T) {
	// The rupee sign is 3 bytes; a byte-index cut that is not a multiple
	// of 3 would land mid-rune. The leading 'a' shifts the tail windows
	// off rune alignment too.
	text := "a" + strings.Repeat("₹", (StorageMaxChars/3)+2000)

	for name, got := range map[string]string{
		"insight": ForInsight(text),
		"storage": ForStorage(text),
		"qa":      ForQuestionAnswering(text),
	} {
		assert.True(t, utf8.ValidString(got), "%s window produced invalid UTF-8", name)
	}
}

func TestHeadWindow_BacksOffToRuneStart(t *testing.T) {
	s := "ab₹cd"
	// Byte 3 is inside the rupee sign.
	got := headWindow(s, 3)
	assert.Equal(t, "ab", got)
	assert.Equal(t, s, headWindow(s, len(s)))
}

func TestTailWindow_SkipsPartialRune(t *testing.T) {
	s := "ab₹cd"
	// A 4-byte tail starts on the rupee sign's second byte.
	got := tailWindow(s, 4)
	assert.Equal(t, "cd", got)
	assert.Equal(t, s, tailWindow(s, len(s)))
}

func TestMidWindow_AdjustsBothEdges(t *testing.T) {
	s := strings.Repeat("₹", 10)
	got := midWindow(s, 7)
	assert.True(t, utf8.ValidString(got))
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 7)
}
