// =============================================================================
// EDI to CSV Converter - Output Record Layout
// =============================================================================
//
// One Record is emitted per CHD segment. The 37 positional columns match the
// downstream flat-file layout exactly; the file is rendered with no header
// row, so positions are the contract.
//
// =============================================================================

package edifact

// RecordWidth is the number of columns in the flat-file layout.
const RecordWidth = 37

// Record is one flat output row. Columns 23-27 start blank and are back-filled
// in place when the PDT, CNT and UNT segments for the record's message arrive
// later in the scan.
type Record [RecordWidth]string

// Column indexes into a Record.
const (
	ColControlRef        = 0  // UNB interchange control reference
	ColBatchSeq          = 1  // UNH message sequence
	ColPartyBO           = 2  // NAD BO
	ColPartyIN           = 3  // NAD IN, leading zeros stripped
	ColPartyPA           = 4  // NAD PA
	ColPaymentDate       = 5  // BGM PYD
	ColGISCode           = 6
	ColRefQualifier      = 7 // literal "POL"
	ColPolicyRef         = 8
	ColBasisOfSale       = 9
	ColPartyQualifier    = 10
	ColNameFormat        = 11
	ColName              = 12
	ColInitials          = 13
	ColProductCode       = 14
	ColAmountQualifier   = 15 // spacing preserved, width 3
	ColAmount            = 16
	ColCurrency          = 17
	ColCurrencyQualifier = 18 // defaults to "N"
	ColDueDate           = 19
	ColPremiumType       = 20 // leading zeros stripped
	ColPremiumAmount     = 21
	ColPremiumCurrency   = 22 // always blank in output
	ColPDTType           = 23 // back-filled
	ColPDTSubCode        = 24 // back-filled
	ColCountCTN          = 25 // back-filled
	ColCountCAM          = 26 // back-filled
	ColSegmentCount      = 27 // back-filled from UNT
	ColRecipient         = 29 // UNB recipient, leading zeros stripped
	ColIFN               = 33 // per-policy IFN reference
	ColPolicyRefEcho     = 34
	ColChargeType        = 35 // defaults to "CBS"
	ColTrailer           = 36 // literal "EORM"
)

// Slice returns the record as a []string, in column order, for writers that
// take row slices (encoding/csv, excelize).
func (r Record) Slice() []string {
	out := make([]string, RecordWidth)
	copy(out, r[:])
	return out
}
