// Package currency resolves a customer's jurisdiction into a currency
// descriptor and tax labelling. Pure lookups, no side effects: identical
// input always yields identical output.
package currency

import (
	"regexp"

	"github.com/kdadks/billing-api/internal/domain/entity"
)

// Info is the resolved currency and tax labelling for one customer.
type Info struct {
	Symbol   string
	Code     string
	Name     string
	TaxLabel string // "GST", "VAT" or generic "Tax"
}

// fallback currency per jurisdiction code, used only when the country record
// lacks explicit currency fields.
var currencyByCountry = map[string]Info{
	"IN": {Symbol: "₹", Code: "INR", Name: "Rupees"},
	"US": {Symbol: "$", Code: "USD", Name: "Dollars"},
	"GB": {Symbol: "£", Code: "GBP", Name: "Pounds"},
}

// Eurozone jurisdiction codes sharing EUR.
var eurozone = map[string]bool{
	"AT": true, "BE": true, "DE": true, "ES": true, "FI": true, "FR": true,
	"GR": true, "IE": true, "IT": true, "NL": true, "PT": true,
}

var euro = Info{Symbol: "€", Code: "EUR", Name: "Euros"}

// defaultInfo is the resolution for an entirely unknown jurisdiction.
var defaultInfo = Info{Symbol: "₹", Code: "INR", Name: "Rupees", TaxLabel: "Tax"}

var taxLabelByCountry = map[string]string{
	"IN": "GST",
	"GB": "VAT",
	"AU": "GST",
	"NZ": "GST",
	"CA": "GST",
}

// Resolve maps a customer's jurisdiction to currency and tax labelling.
// Explicit currency fields on the country record win regardless of its code;
// the fallback table only covers records without them. A nil country resolves
// to the INR default.
func Resolve(country *entity.Country) Info {
	if country == nil {
		return defaultInfo
	}

	info, ok := lookupCurrency(country.Code)
	if !ok {
		info = defaultInfo
	}

	// Country record fields are authoritative when present.
	if country.CurrencyCode != "" {
		info.Code = country.CurrencyCode
	}
	if country.CurrencySymbol != "" {
		info.Symbol = country.CurrencySymbol
	}
	if country.CurrencyName != "" {
		info.Name = country.CurrencyName
	}

	info.TaxLabel = TaxLabel(country.Code)
	return info
}

func lookupCurrency(code string) (Info, bool) {
	if info, ok := currencyByCountry[code]; ok {
		return info, true
	}
	if eurozone[code] {
		return euro, true
	}
	return Info{}, false
}

// TaxLabel returns the tax heading for a jurisdiction code ("GST", "VAT", "Tax").
func TaxLabel(code string) string {
	if label, ok := taxLabelByCountry[code]; ok {
		return label
	}
	if eurozone[code] {
		return "VAT"
	}
	return "Tax"
}

// TaxIDLabel returns the caption for the customer's tax-registration field.
func TaxIDLabel(code string) string {
	switch {
	case code == "IN":
		return "GSTIN"
	case code == "GB" || eurozone[code]:
		return "VAT No"
	default:
		return "Tax ID"
	}
}

// gstinPattern is the 15-character Indian GSTIN format:
// 2-digit state code, 10-char PAN, entity digit, "Z", check character.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// taxIDPatterns holds per-jurisdiction registration formats. Only India is
// strict today; the table exists so other jurisdictions can be tightened
// without touching call sites.
var taxIDPatterns = map[string]*regexp.Regexp{
	"IN": gstinPattern,
}

// ValidateTaxID checks a tax-registration id against the jurisdiction's
// format. Jurisdictions without a registered pattern accept free-form text.
// An empty id is always accepted; requiredness is the caller's concern.
func ValidateTaxID(code, taxID string) bool {
	if taxID == "" {
		return true
	}
	pattern, ok := taxIDPatterns[code]
	if !ok {
		return true
	}
	return pattern.MatchString(taxID)
}
