// =============================================================================
// EDI to CSV Converter - Segment Tokenizer
// =============================================================================
//
// This file handles the first stage of decoding: splitting the raw interchange
// text into segments, and splitting each segment into a tag plus its ordered
// field list.
//
// EDIFACT STRUCTURE (the subset this tool handles):
//   - Segments are terminated by an apostrophe (')
//   - Fields within a segment are separated by plus (+)
//   - Composite sub-elements within a field are separated by colon (:)
//
// Provider exports sometimes carry a plain-text preamble ending in an
// "End-of-Header:" line before the first UNB segment; the tokenizer strips it.
//
// =============================================================================

package edifact

import (
	"regexp"
	"strings"
)

// Tag is the 3-letter code identifying a segment type.
type Tag string

// Segment tags recognized by the COMTFR decoder. Any other tag is ignored
// during decoding, which keeps the decoder forward-compatible with segment
// types the flat-file output does not use.
const (
	TagUNB Tag = "UNB" // interchange envelope
	TagUNH Tag = "UNH" // message header (opens a new message)
	TagBGM Tag = "BGM" // beginning of message (payment date)
	TagNAD Tag = "NAD" // name and address (BO/IN/PA parties)
	TagGIS Tag = "GIS" // general indicator
	TagRFF Tag = "RFF" // reference (POL policy reference, IFN)
	TagPOL Tag = "POL" // policy / party identification
	TagCHD Tag = "CHD" // charge or commission line (one output record each)
	TagPDT Tag = "PDT" // product detail (back-fills the last record)
	TagCNT Tag = "CNT" // control totals (back-fill all records in message)
	TagUNT Tag = "UNT" // message trailer (segment count back-fill)
)

// Segment is one apostrophe-terminated unit of the interchange: a tag plus the
// ordered list of raw field strings that followed it.
type Segment struct {
	Tag    Tag
	Fields []string
}

// Envelope holds the interchange-level metadata extracted from the UNB
// segment. It is computed once per decode and read-only thereafter.
type Envelope struct {
	Sender     string
	Recipient  string // leading zeros stripped
	Datetime   string
	ControlRef string
}

// preambleHeader matches the well-known "End-of-Header:" preamble terminator
// line some providers prepend to the interchange.
var preambleHeader = regexp.MustCompile(`(?m)^End-of-Header:\s*\n`)

// splitSegments normalizes line endings, strips the optional preamble header
// line, and splits the interchange on the apostrophe terminator. Empty and
// whitespace-only pieces are dropped; the rest are trimmed.
func splitSegments(text string) []string {
	raw := strings.ReplaceAll(text, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	raw = preambleHeader.ReplaceAllString(raw, "")

	var segs []string
	for _, piece := range strings.Split(raw, "'") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			segs = append(segs, piece)
		}
	}
	return segs
}

// Tokenize splits the raw interchange text into segments. An interchange with
// zero valid segments yields an empty slice, never an error: downstream
// decoding then produces zero records, which callers surface as "no billable
// records found" rather than a failure.
func Tokenize(text string) []Segment {
	raw := splitSegments(text)
	segments := make([]Segment, 0, len(raw))
	for _, seg := range raw {
		parts := strings.Split(seg, "+")
		segments = append(segments, Segment{
			Tag:    Tag(parts[0]),
			Fields: parts[1:],
		})
	}
	return segments
}

// ExtractEnvelope scans the interchange for the UNB envelope and returns its
// metadata. The scan tolerates preamble text on the same segment by slicing
// from the "UNB+" marker. A missing or short UNB is non-fatal: the second
// return value is false and the caller leaves the envelope columns empty.
func ExtractEnvelope(text string) (Envelope, bool) {
	for _, seg := range splitSegments(text) {
		idx := strings.Index(seg, "UNB+")
		if idx < 0 {
			continue
		}
		fields := strings.Split(seg[idx:], "+")
		if len(fields) < 6 {
			return Envelope{}, false
		}
		return Envelope{
			Sender:     fields[2],
			Recipient:  trimLeadingZeros(fields[3]),
			Datetime:   fields[4],
			ControlRef: fields[5],
		}, true
	}
	return Envelope{}, false
}

// trimLeadingZeros strips leading zeros from a numeric reference, keeping a
// single "0" when the value is all zeros. The downstream flat file renders
// the UNB recipient and the NAD IN party this way.
func trimLeadingZeros(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" && s != "" {
		return "0"
	}
	return t
}

// padRight pads a token with trailing spaces to the given width. EDIFACT
// amount qualifiers carry significant spacing (e.g. "R  ") which the flat
// file preserves.
func padRight(s string, width int) string {
	if len(s) < width {
		return s + strings.Repeat(" ", width-len(s))
	}
	return s
}
