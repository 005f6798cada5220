package edifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeSplitsOnApostrophe(t *testing.T) {
	segments := Tokenize("UNH+1'BGM+770'NAD+BO+BROKER'")

	require.Len(t, segments, 3)
	assert.Equal(t, TagUNH, segments[0].Tag)
	assert.Equal(t, []string{"1"}, segments[0].Fields)
	assert.Equal(t, TagBGM, segments[1].Tag)
	assert.Equal(t, TagNAD, segments[2].Tag)
	assert.Equal(t, []string{"BO", "BROKER"}, segments[2].Fields)
}

func TestTokenizeNormalizesLineEndings(t *testing.T) {
	segments := Tokenize("UNH+1'\r\nBGM+770'\rGIS+37'")

	require.Len(t, segments, 3)
	assert.Equal(t, TagUNH, segments[0].Tag)
	assert.Equal(t, TagBGM, segments[1].Tag)
	assert.Equal(t, TagGIS, segments[2].Tag)
}

func TestTokenizeStripsPreambleHeader(t *testing.T) {
	text := "End-of-Header:\nUNB+UNOA:2+X+SENDER+0099+202401011200+REF123'"

	segments := Tokenize(text)

	require.Len(t, segments, 1)
	assert.Equal(t, TagUNB, segments[0].Tag)
}

func TestTokenizeDropsEmptyPieces(t *testing.T) {
	segments := Tokenize("UNH+1'  \n  'BGM+770'''")

	require.Len(t, segments, 2)
}

func TestTokenizeEmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \n\n  "))
}

func TestTokenizeSegmentWithoutFields(t *testing.T) {
	segments := Tokenize("UNS'")

	require.Len(t, segments, 1)
	assert.Equal(t, Tag("UNS"), segments[0].Tag)
	assert.Empty(t, segments[0].Fields)
}

func TestExtractEnvelope(t *testing.T) {
	env, ok := ExtractEnvelope("UNB+X+Y+SENDER+0099+202401011200+REF123'")

	require.True(t, ok)
	assert.Equal(t, "SENDER", env.Sender)
	assert.Equal(t, "99", env.Recipient)
	assert.Equal(t, "202401011200", env.Datetime)
	assert.Equal(t, "REF123", env.ControlRef)
}

func TestExtractEnvelopeWithLeadingJunk(t *testing.T) {
	// Some exports glue preamble text onto the first segment; the scan slices
	// from the UNB+ marker.
	env, ok := ExtractEnvelope("GARBAGE UNB+X+Y+SENDER+0042+2401151200+REF999'UNH+1'")

	require.True(t, ok)
	assert.Equal(t, "SENDER", env.Sender)
	assert.Equal(t, "42", env.Recipient)
	assert.Equal(t, "REF999", env.ControlRef)
}

func TestExtractEnvelopeMissing(t *testing.T) {
	_, ok := ExtractEnvelope("UNH+1'BGM+770'")
	assert.False(t, ok)
}

func TestExtractEnvelopeTooFewFields(t *testing.T) {
	_, ok := ExtractEnvelope("UNB+X+Y+SENDER'")
	assert.False(t, ok)
}

func TestTrimLeadingZeros(t *testing.T) {
	assert.Equal(t, "42", trimLeadingZeros("0042"))
	assert.Equal(t, "42", trimLeadingZeros("42"))
	assert.Equal(t, "0", trimLeadingZeros("000"))
	assert.Equal(t, "", trimLeadingZeros(""))
	assert.Equal(t, "7741", trimLeadingZeros("0007741"))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "R  ", padRight("R", 3))
	assert.Equal(t, "I03", padRight("I03", 3))
	assert.Equal(t, "ABCD", padRight("ABCD", 3))
	assert.Equal(t, "   ", padRight("", 3))
}
