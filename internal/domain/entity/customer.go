package entity

import "time"

// Customer is a billing identity. Customers are externally managed; the
// billing core only reads them.
type Customer struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	CountryID    string // jurisdiction reference
	TaxID        string // tax registration (GSTIN, VAT id, ...)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
