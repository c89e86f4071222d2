package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency precision used across screens.
// Totals on printed documents keep the legacy 2 decimals; entry and edit forms
// use 3 decimals (millimes) for the Tunisian dinar.
const (
	DisplayDecimals = 2
	InputDecimals   = 3
	CurrencyLabel   = "DT"
)

// ToFloat coerces a decoded JSON value into a float64.
// Absent, non-numeric or non-finite values become 0.
func ToFloat(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		// accept "12,500" as written on French forms
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", ".")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// IsNumeric reports whether v holds a value ToFloat can read.
func IsNumeric(v any) bool {
	switch n := v.(type) {
	case float64, float32, int, int32, int64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	case string:
		_, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(n), ",", "."), 64)
		return err == nil
	}
	return false
}

// FormatAmount rounds half away from zero to the given number of decimals.
// FormatAmount(19.999, 2) == "20.00", FormatAmount(19.999, 3) == "19.999".
func FormatAmount(amount float64, decimals int32) string {
	return decimal.NewFromFloat(amount).StringFixed(decimals)
}

// FormatTotal formats a stored total for document display.
func FormatTotal(v any) string {
	return FormatAmount(ToFloat(v), DisplayDecimals)
}

// FormatInput formats a currency value for an entry or edit form.
func FormatInput(v any) string {
	return FormatAmount(ToFloat(v), InputDecimals)
}

// FormatQuantity drops the decimals of whole quantities ("2" rather than "2.000").
func FormatQuantity(q float64) string {
	return decimal.NewFromFloat(q).String()
}

// RoundAmount rounds half away from zero to the given number of decimals.
func RoundAmount(amount float64, decimals int32) float64 {
	return decimal.NewFromFloat(amount).Round(decimals).InexactFloat64()
}
