package core

import "fmt"

// DefaultCurrency is the fallback for unknown codes and absent preferences.
const DefaultCurrency = "USD"

type currencyInfo struct {
	Symbol string
	Flag   string
}

// Supported currency codes, in menu order.
var SupportedCurrencies = []string{"USD", "EUR", "INR", "GBP", "JPY"}

var currencies = map[string]currencyInfo{
	"USD": {Symbol: "$", Flag: "🇺🇸"},
	"EUR": {Symbol: "€", Flag: "🇪🇺"},
	"INR": {Symbol: "₹", Flag: "🇮🇳"},
	"GBP": {Symbol: "£", Flag: "🇬🇧"},
	"JPY": {Symbol: "¥", Flag: "🇯🇵"},
}

// IsSupportedCurrency reports whether code is one of the supported set.
func IsSupportedCurrency(code string) bool {
	_, ok := currencies[code]
	return ok
}

// CurrencySymbol returns the symbol for a currency code. Unknown codes fall
// back to the USD symbol; the function never fails.
func CurrencySymbol(code string) string {
	if info, ok := currencies[code]; ok {
		return info.Symbol
	}
	return currencies[DefaultCurrency].Symbol
}

// CurrencyFlag returns the emoji flag for a currency code, with the same
// fallback policy as CurrencySymbol.
func CurrencyFlag(code string) string {
	if info, ok := currencies[code]; ok {
		return info.Flag
	}
	return currencies[DefaultCurrency].Flag
}

// FormatAmount renders an amount as symbol plus exactly two fraction
// digits, no thousands separators: FormatAmount(120.5, "USD") == "$120.50".
func FormatAmount(amount float64, code string) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol(code), amount)
}
