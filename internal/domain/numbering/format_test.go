package numbering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/numbering"
)

func TestFinancialYear(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		startMonth int
		want       string
	}{
		{"after april start", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), 4, "2025-26"},
		{"before april start", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 4, "2024-25"},
		{"exactly at start month", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 4, "2025-26"},
		{"january start is calendar year", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 1, "2025"},
		{"century wrap", time.Date(2099, 5, 1, 0, 0, 0, 0, time.UTC), 4, "2099-00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, numbering.FinancialYear(tt.date, tt.startMonth))
		})
	}
}

func TestFormat(t *testing.T) {
	june := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		settings entity.InvoiceSettings
		number   int64
		want     string
	}{
		{
			"year month counter",
			entity.InvoiceSettings{InvoicePrefix: "INV-", NumberFormat: "YYYY-MM-####"},
			7,
			"INV-2025-06-0007",
		},
		{
			"financial year template",
			entity.InvoiceSettings{
				InvoicePrefix: "KDK/", NumberFormat: "YYYY/###",
				ResetAnnually: true, FinancialYearStartMonth: 4,
			},
			42,
			"KDK/2025-26/042",
		},
		{
			"short year and suffix",
			entity.InvoiceSettings{NumberFormat: "YY-##", InvoiceSuffix: "/A"},
			3,
			"25-03/A",
		},
		{
			"empty template falls back to counter",
			entity.InvoiceSettings{InvoicePrefix: "N-"},
			12,
			"N-0012",
		},
		{
			"template without counter slot appends one",
			entity.InvoiceSettings{NumberFormat: "YYYY-MM-"},
			5,
			"2025-06-0005",
		},
		{
			"counter wider than slot",
			entity.InvoiceSettings{NumberFormat: "##"},
			123,
			"123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := numbering.Format(&tt.settings, tt.number, june)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestFormat_MonotonicDistinct: consecutive counter values produce distinct,
// lexically increasing numbers under a fixed-width template.
func TestFormat_MonotonicDistinct(t *testing.T) {
	s := &entity.InvoiceSettings{InvoicePrefix: "INV-", NumberFormat: "YYYY-####"}
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	prev := ""
	for n := int64(1); n <= 25; n++ {
		got := numbering.Format(s, n, now)
		assert.Greater(t, got, prev)
		prev = got
	}
}
