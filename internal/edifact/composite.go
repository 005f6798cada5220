// =============================================================================
// EDI to CSV Converter - Composite Field Parsers
// =============================================================================
//
// Per-segment-type decoders. Each parser receives the already-split field list
// for one segment occurrence and returns a typed struct. Absent composite
// sub-elements yield empty strings, never errors: the source format is lossy
// by design and the decoder degrades field-by-field to match the downstream
// flat-file expectations.
//
// =============================================================================

package edifact

import (
	"regexp"
	"strings"
)

// twoDigits matches a complete two-digit basis-of-sale code.
var twoDigits = regexp.MustCompile(`^\d{2}$`)

// productCodeStart matches the leading character class of a product code.
var productCodeStart = regexp.MustCompile(`^[A-Z0-9]`)

// CHDFields is one decoded charge/commission line: amount composite, currency
// qualifier and charge type, CDD due date, and the premium composite that
// follows it.
type CHDFields struct {
	AmountQualifier   string // I/R/X family, trailing spaces preserved, width 3
	Amount            string
	Currency          string
	CurrencyQualifier string
	ChargeType        string // CBS/ACH/CCH
	DueDate           string
	DueDateFormat     string
	PremiumType       string
	PremiumAmount     string
	PremiumCurrency   string
}

// parseCHD decodes a CHD field list.
//
// Field 0 is the amount composite "qualifier:amount:currency". The qualifier's
// spacing is significant and is padded to width 3 rather than trimmed; the
// flat file renders it with embedded spaces.
//
// Field 1 is "currencyQualifier:chargeType".
//
// The first remaining field prefixed "CDD:" carries the due date (and format
// code); the field immediately after it is the premium composite
// "type:amount:currency".
func parseCHD(fields []string) CHDFields {
	var d CHDFields
	if len(fields) > 0 {
		c := strings.Split(fields[0], ":")
		d.AmountQualifier = padRight(c[0], 3)
		if len(c) >= 2 {
			d.Amount = c[1]
		}
		if len(c) >= 3 {
			d.Currency = c[2]
		}
	}

	if len(fields) >= 2 && fields[1] != "" {
		c := strings.Split(fields[1], ":")
		if c[0] != "" {
			d.CurrencyQualifier = c[0]
		}
		if len(c) >= 2 {
			d.ChargeType = c[1]
		}
	}

	cddIdx := -1
	for i := 2; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "CDD:") {
			cddIdx = i
			break
		}
	}
	if cddIdx < 0 {
		return d
	}

	c := strings.Split(fields[cddIdx], ":")
	if len(c) > 1 {
		d.DueDate = c[1]
	}
	if len(c) > 2 {
		d.DueDateFormat = c[2]
	}

	if cddIdx+1 < len(fields) {
		prem := strings.Split(fields[cddIdx+1], ":")
		d.PremiumType = prem[0]
		if len(prem) >= 2 {
			d.PremiumAmount = prem[1]
		}
		if len(prem) >= 3 {
			d.PremiumCurrency = prem[2]
		}
	}
	return d
}

// POLFields is the decoded policy/party identification segment.
type POLFields struct {
	PartyQualifier string // PH or MR
	NameFormat     string
	Name           string
	Initials       string
	ProductCode    string
	BasisOfSale    string // two-digit code, e.g. 59 or 99
}

// parsePOL decodes a POL field list.
//
// A leading two-digit field is the basis-of-sale code. The first field equal
// to PH or MR is the party qualifier; "99" is never a party qualifier even
// though it looks like one in some interchanges, because it is reserved for
// basis-of-sale. The field after the qualifier, when composite "format:name",
// yields the name format and name; a short (<=4 char) alphanumeric trailing
// field is the product code.
func parsePOL(fields []string) POLFields {
	var d POLFields
	if len(fields) > 0 && twoDigits.MatchString(fields[0]) {
		d.BasisOfSale = fields[0]
	}

	for i, f := range fields {
		if f != "PH" && f != "MR" {
			continue
		}
		d.PartyQualifier = f
		if i+1 < len(fields) {
			c := strings.Split(fields[i+1], ":")
			if len(c) >= 2 {
				d.NameFormat = c[0]
				d.Name = c[1]
			}
		}
		if len(fields) >= i+3 {
			last := fields[len(fields)-1]
			if last != "" && len(last) <= 4 && productCodeStart.MatchString(last) {
				d.ProductCode = last
			}
		}
		break
	}
	return d
}

// parsePairs decodes the "qualifier:value" field pattern shared by RFF and
// CNT: every field containing a colon becomes one map entry, split on the
// first colon only.
func parsePairs(fields []string) map[string]string {
	pairs := make(map[string]string)
	for _, f := range fields {
		if k, v, ok := strings.Cut(f, ":"); ok {
			pairs[k] = v
		}
	}
	return pairs
}

// parsePDT decodes the two positional PDT fields (type, sub-code). The
// sub-code normalization (leading-zero stripping) happens at the state
// machine, where "01" becomes "1" and "00" becomes "".
func parsePDT(fields []string) (pdtType, subCode string) {
	if len(fields) >= 1 {
		pdtType = fields[0]
	}
	if len(fields) >= 2 {
		subCode = fields[1]
	}
	return pdtType, subCode
}

// parseNAD decodes the two positional NAD fields (qualifier, value). The
// second return value reports whether both were present.
func parseNAD(fields []string) (qualifier, value string, ok bool) {
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}

// parseBGM scans the BGM fields for the PYD composite and returns its second
// component, the payment date. Empty when no PYD composite is present.
func parseBGM(fields []string) string {
	for _, f := range fields {
		if strings.HasPrefix(f, "PYD:") {
			parts := strings.Split(f, ":")
			if len(parts) > 1 {
				return parts[1]
			}
		}
	}
	return ""
}
