package entity

import "time"

// InvoiceSettings is the process-wide numbering configuration. There is one
// row; CurrentNumber is only ever mutated through the store's atomic
// increment, never by read-modify-write across two calls.
type InvoiceSettings struct {
	ID                      string
	InvoicePrefix           string
	InvoiceSuffix           string
	NumberFormat            string // template, e.g. "YYYY-MM-####"
	ResetAnnually           bool
	FinancialYearStartMonth int // 1-12; April (4) for the Indian financial year
	CurrentFinancialYear    string
	CurrentNumber           int64
	UpdatedAt               time.Time
}

// CompanySettings carries branding and legal identity. Read-only to the
// billing core; only the document layout consumes it.
type CompanySettings struct {
	ID                string
	CompanyName       string
	AddressLine1      string
	AddressLine2      string
	City              string
	State             string
	PostalCode        string
	Country           string
	Email             string
	Phone             string
	Website           string
	TaxID             string // GSTIN
	PAN               string
	CIN               string
	LogoImage         []byte
	HeaderImage       []byte
	FooterImage       []byte
	BankName          string
	BankAccountName   string
	BankAccountNumber string
	BankIFSC          string
	BankSWIFT         string
	DefaultTerms      string
	UpdatedAt         time.Time
}

// HasBankDetails reports whether there is banking info to render on the document.
func (c *CompanySettings) HasBankDetails() bool {
	return c.BankAccountNumber != "" || c.BankName != ""
}

// TermsTemplate is a reusable terms & conditions snippet that pre-fills the
// invoice terms field.
type TermsTemplate struct {
	ID        string
	Name      string
	Content   string
	IsDefault bool
	CreatedAt time.Time
}
