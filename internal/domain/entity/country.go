package entity

// Country is a jurisdiction record. Currency fields, when present, take
// precedence over any built-in fallback mapping.
type Country struct {
	ID             string
	Code           string // ISO-style code ("IN", "US", "GB", ...)
	Name           string
	CurrencyCode   string
	CurrencySymbol string
	CurrencyName   string
}
