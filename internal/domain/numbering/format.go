// Package numbering formats reserved counter values into human-readable
// invoice numbers and computes financial-year cycles. Pure; the atomic
// counter mutation lives at the store boundary.
package numbering

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kdadks/billing-api/internal/domain/entity"
)

var hashRun = regexp.MustCompile(`#+`)

// FinancialYear returns the label of the financial year containing t for a
// cycle starting at startMonth (1-12), e.g. "2025-26" for April 2025 with
// startMonth 4. A start month of January collapses to the calendar year.
func FinancialYear(t time.Time, startMonth int) string {
	if startMonth <= 1 || startMonth > 12 {
		return fmt.Sprintf("%d", t.Year())
	}
	start := t.Year()
	if int(t.Month()) < startMonth {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// Format renders a counter value through the settings' number template.
// Template tokens: YYYY (year), YY (short year), MM (month), a run of '#'
// (zero-padded counter, width = run length). When annual reset is on the year
// tokens represent the financial year instead of the calendar year.
func Format(s *entity.InvoiceSettings, number int64, now time.Time) string {
	format := s.NumberFormat
	if format == "" {
		format = "####"
	}

	var yearFull, yearShort string
	if s.ResetAnnually {
		yearFull = FinancialYear(now, s.FinancialYearStartMonth)
		if i := strings.Index(yearFull, "-"); i >= 0 {
			yearShort = yearFull[2:]
		} else {
			yearShort = yearFull[len(yearFull)-2:]
		}
	} else {
		yearFull = fmt.Sprintf("%d", now.Year())
		yearShort = yearFull[2:]
	}

	out := strings.ReplaceAll(format, "YYYY", yearFull)
	out = strings.ReplaceAll(out, "YY", yearShort)
	out = strings.ReplaceAll(out, "MM", fmt.Sprintf("%02d", int(now.Month())))

	if loc := hashRun.FindStringIndex(out); loc != nil {
		width := loc[1] - loc[0]
		out = out[:loc[0]] + fmt.Sprintf("%0*d", width, number) + out[loc[1]:]
	} else {
		// Template without a counter slot still has to produce unique numbers.
		out = out + fmt.Sprintf("%04d", number)
	}

	return s.InvoicePrefix + out + s.InvoiceSuffix
}
