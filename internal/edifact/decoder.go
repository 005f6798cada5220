// =============================================================================
// EDI to CSV Converter - Interchange Decoder
// =============================================================================
//
// Single forward scan over the tokenized segment sequence. The decoder keeps
// a running per-message context (reset on every UNH), creates one Record per
// CHD segment, and back-fills previously created records when PDT, CNT and
// UNT segments arrive after the records they describe:
//
//   - PDT updates the most recently created record of the current message
//   - CNT and UNT update every record of the current message
//
// Records live in an append-only arena; each open message tracks a list of
// indices into that arena, so back-fill never relies on hidden aliasing.
// Segment order is the contract: a PDT or CNT seen before its CHD has no
// effect on that CHD, matching real interchange ordering conventions.
//
// There is no fatal error path. Missing or malformed sub-fields degrade to
// empty output columns; strict mode additionally collects anomalies for
// observability without changing the decoded output.
//
// =============================================================================

package edifact

import (
	"log/slog"
	"strings"
)

// Literals required by the downstream flat-file format.
const (
	refQualifierLiteral      = "POL"
	defaultCurrencyQualifier = "N"
	defaultChargeType        = "CBS"
	recordTrailer            = "EORM"
)

// Anomaly describes one tolerated irregularity observed during a strict-mode
// decode: the index of the offending segment in document order, its tag, and
// a short reason.
type Anomaly struct {
	SegmentIndex int
	Tag          Tag
	Reason       string
}

// Decoder decodes COMTFR interchanges. The zero value is ready to use. Each
// Decode call builds fresh state, so one Decoder may be shared across
// goroutines.
type Decoder struct {
	// Strict enables anomaly collection. Decoded output is identical either
	// way.
	Strict bool

	// Logger, when set, receives debug lines for strict-mode anomalies.
	Logger *slog.Logger
}

// messageContext is the mutable per-message state, reset on every UNH.
type messageContext struct {
	batchSeq    string
	paymentDate string
	partyBO     string
	partyIN     string
	partyPA     string
	gisCode     string
	policyRef   string
	pol         POLFields
	pdtType     string
	pdtSubCode  string
	counts      map[string]string
}

// Decode runs the full scan and returns the records in CHD-encounter order,
// plus the anomaly list when strict mode is enabled (nil otherwise). Zero CHD
// segments yield an empty record slice, not an error; callers surface that as
// "no billable records found".
func (d *Decoder) Decode(text string) ([]Record, []Anomaly) {
	segments := Tokenize(text)

	var anomalies []Anomaly
	note := func(index int, tag Tag, reason string) {
		if !d.Strict {
			return
		}
		anomalies = append(anomalies, Anomaly{SegmentIndex: index, Tag: tag, Reason: reason})
		if d.Logger != nil {
			d.Logger.Debug("decode anomaly",
				slog.Int("segment", index),
				slog.String("tag", string(tag)),
				slog.String("reason", reason))
		}
	}

	envelope, ok := ExtractEnvelope(text)
	if !ok {
		note(-1, TagUNB, "envelope missing or fewer than 6 fields")
	}

	records := []Record{}
	// Arena indices of the records created under each UNH sequence. Buckets
	// are reused when a sequence number repeats, matching the established
	// flat-file output.
	byMessage := make(map[string][]int)
	ctx := messageContext{counts: map[string]string{}}
	// IFN references keyed by the policy reference active when the RFF was
	// seen; one message may cover several policies, each with its own IFN.
	ifnByPolicy := make(map[string]string)

	for i, seg := range segments {
		switch seg.Tag {

		case TagUNH:
			seq := ""
			if len(seg.Fields) > 0 {
				seq = seg.Fields[0]
			} else {
				note(i, TagUNH, "missing message sequence")
			}
			ctx = messageContext{batchSeq: seq, counts: map[string]string{}}
			if _, exists := byMessage[seq]; !exists {
				byMessage[seq] = []int{}
			}
			ifnByPolicy = make(map[string]string)

		case TagBGM:
			if date := parseBGM(seg.Fields); date != "" {
				ctx.paymentDate = date
			}

		case TagNAD:
			qual, val, ok := parseNAD(seg.Fields)
			if !ok {
				note(i, TagNAD, "fewer than 2 fields")
				continue
			}
			switch qual {
			case "BO":
				ctx.partyBO = val
			case "IN":
				ctx.partyIN = trimLeadingZeros(val)
			case "PA":
				ctx.partyPA = val
			}

		case TagGIS:
			if len(seg.Fields) > 0 {
				ctx.gisCode = seg.Fields[0]
			}

		case TagRFF:
			refs := parsePairs(seg.Fields)
			if pol, ok := refs["POL"]; ok {
				ctx.policyRef = pol
			}
			if ifn, ok := refs["IFN"]; ok && ctx.policyRef != "" {
				ifnByPolicy[ctx.policyRef] = ifn
			}

		case TagPOL:
			ctx.pol = parsePOL(seg.Fields)

		case TagPDT:
			pdtType, subCode := parsePDT(seg.Fields)
			if subCode != "" {
				subCode = strings.TrimLeft(subCode, "0")
			}
			ctx.pdtType, ctx.pdtSubCode = pdtType, subCode
			// Back-fill the most recent record of this message, if any.
			if indices := byMessage[ctx.batchSeq]; len(indices) > 0 {
				last := indices[len(indices)-1]
				records[last][ColPDTType] = ctx.pdtType
				records[last][ColPDTSubCode] = ctx.pdtSubCode
			}

		case TagCNT:
			ctx.counts = parsePairs(seg.Fields)
			for _, idx := range byMessage[ctx.batchSeq] {
				records[idx][ColCountCTN] = ctx.counts["CTN"]
				records[idx][ColCountCAM] = ctx.counts["CAM"]
			}

		case TagCHD:
			records = append(records, d.assemble(envelope, &ctx, ifnByPolicy, seg.Fields))
			byMessage[ctx.batchSeq] = append(byMessage[ctx.batchSeq], len(records)-1)

		case TagUNT:
			if len(seg.Fields) == 0 || seg.Fields[0] == "" {
				note(i, TagUNT, "missing segment count")
				continue
			}
			for _, idx := range byMessage[ctx.batchSeq] {
				records[idx][ColSegmentCount] = seg.Fields[0]
			}
		}
	}

	return records, anomalies
}

// assemble snapshots the current context and envelope into one output record
// for a CHD segment.
func (d *Decoder) assemble(envelope Envelope, ctx *messageContext, ifnByPolicy map[string]string, chdFields []string) Record {
	chd := parseCHD(chdFields)

	premiumType := chd.PremiumType
	if premiumType != "" {
		premiumType = strings.TrimLeft(premiumType, "0")
	}

	var r Record
	r[ColControlRef] = envelope.ControlRef
	r[ColBatchSeq] = ctx.batchSeq
	r[ColPartyBO] = ctx.partyBO
	r[ColPartyIN] = ctx.partyIN
	r[ColPartyPA] = ctx.partyPA
	r[ColPaymentDate] = ctx.paymentDate
	r[ColGISCode] = ctx.gisCode
	r[ColRefQualifier] = refQualifierLiteral
	r[ColPolicyRef] = ctx.policyRef
	r[ColBasisOfSale] = ctx.pol.BasisOfSale
	r[ColPartyQualifier] = ctx.pol.PartyQualifier
	r[ColNameFormat] = ctx.pol.NameFormat
	r[ColName] = ctx.pol.Name
	r[ColInitials] = ctx.pol.Initials
	r[ColProductCode] = ctx.pol.ProductCode
	r[ColAmountQualifier] = chd.AmountQualifier
	r[ColAmount] = chd.Amount
	r[ColCurrency] = chd.Currency
	r[ColCurrencyQualifier] = chd.CurrencyQualifier
	if r[ColCurrencyQualifier] == "" {
		r[ColCurrencyQualifier] = defaultCurrencyQualifier
	}
	r[ColDueDate] = chd.DueDate
	r[ColPremiumType] = premiumType
	r[ColPremiumAmount] = chd.PremiumAmount
	// ColPremiumCurrency stays blank regardless of the parsed value: the
	// downstream format requires it empty.
	r[ColRecipient] = envelope.Recipient
	r[ColIFN] = ifnByPolicy[ctx.policyRef]
	r[ColPolicyRefEcho] = ctx.policyRef
	r[ColChargeType] = chd.ChargeType
	if r[ColChargeType] == "" {
		r[ColChargeType] = defaultChargeType
	}
	r[ColTrailer] = recordTrailer
	return r
}

// Decode decodes an interchange with default (tolerant, non-strict) options.
// It is the pure entry point for hosts that do not need anomaly collection.
func Decode(text string) []Record {
	var d Decoder
	records, _ := d.Decode(text)
	return records
}
