package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdadks/billing-api/internal/domain/currency"
	"github.com/kdadks/billing-api/internal/domain/entity"
)

func TestResolve_NilCountryDefaultsToINR(t *testing.T) {
	got := currency.Resolve(nil)

	assert.Equal(t, "INR", got.Code)
	assert.Equal(t, "₹", got.Symbol)
	assert.Equal(t, "Rupees", got.Name)
	assert.Equal(t, "Tax", got.TaxLabel)
}

// TestResolve_ExplicitFieldsWinVerbatim: currency fields on the country record
// are returned as-is regardless of the jurisdiction code.
func TestResolve_ExplicitFieldsWinVerbatim(t *testing.T) {
	got := currency.Resolve(&entity.Country{
		Code:           "IN",
		CurrencyCode:   "AED",
		CurrencySymbol: "د.إ",
		CurrencyName:   "Dirhams",
	})

	assert.Equal(t, "AED", got.Code)
	assert.Equal(t, "د.إ", got.Symbol)
	assert.Equal(t, "Dirhams", got.Name)
	assert.Equal(t, "GST", got.TaxLabel) // label still follows the code
}

func TestResolve_FallbackTable(t *testing.T) {
	tests := []struct {
		code       string
		wantCode   string
		wantSymbol string
		wantLabel  string
	}{
		{"IN", "INR", "₹", "GST"},
		{"US", "USD", "$", "Tax"},
		{"GB", "GBP", "£", "VAT"},
		{"DE", "EUR", "€", "VAT"},
		{"FR", "EUR", "€", "VAT"},
		{"ZZ", "INR", "₹", "Tax"}, // unknown jurisdiction
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := currency.Resolve(&entity.Country{Code: tt.code})
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantSymbol, got.Symbol)
			assert.Equal(t, tt.wantLabel, got.TaxLabel)
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	in := &entity.Country{Code: "GB"}
	assert.Equal(t, currency.Resolve(in), currency.Resolve(in))
}

func TestTaxIDLabel(t *testing.T) {
	assert.Equal(t, "GSTIN", currency.TaxIDLabel("IN"))
	assert.Equal(t, "VAT No", currency.TaxIDLabel("GB"))
	assert.Equal(t, "VAT No", currency.TaxIDLabel("DE"))
	assert.Equal(t, "Tax ID", currency.TaxIDLabel("US"))
}

func TestValidateTaxID(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		taxID string
		want  bool
	}{
		{"valid GSTIN", "IN", "27AAPFU0939F1ZV", true},
		{"GSTIN too short", "IN", "27AAPFU0939F1Z", false},
		{"GSTIN bad structure", "IN", "AAPFU0939F1ZV27", false},
		{"empty always accepted", "IN", "", true},
		{"free-form jurisdiction", "GB", "GB123456789", true},
		{"unknown jurisdiction", "ZZ", "anything goes", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, currency.ValidateTaxID(tt.code, tt.taxID))
		})
	}
}
