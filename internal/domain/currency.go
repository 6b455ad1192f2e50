package domain

// Currency is one entry of the fixed currency table.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var currencies = []Currency{
	{Code: "PHP", Symbol: "₱", Name: "Philippine Peso"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "THB", Symbol: "฿", Name: "Thai Baht"},
	{Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit"},
	{Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah"},
	{Code: "VND", Symbol: "₫", Name: "Vietnamese Dong"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
}

// Currencies returns a copy of the currency table.
func Currencies() []Currency {
	return append([]Currency(nil), currencies...)
}

// LookupCurrency finds a currency by its exact code.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}
