package formatter

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money formats amounts with a currency prefix and the digit grouping of a
// locale, e.g. "NPR 12,34,567.50" for en-IN.
type Money struct {
	currency string
	printer  *message.Printer
}

// NewMoney builds a formatter. An unparseable locale falls back to English.
func NewMoney(currency, locale string) Money {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Money{currency: currency, printer: message.NewPrinter(tag)}
}

func (m Money) Format(amount float64) string {
	if m.printer == nil {
		m = NewMoney(m.currency, "en")
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}
	prefix := ""
	if m.currency != "" {
		prefix = m.currency + " "
	}
	return sign + prefix + m.printer.Sprintf("%.2f", amount)
}

// Percent formats a whole-number percentage.
func (m Money) Percent(pct float64) string {
	if m.printer == nil {
		m = NewMoney(m.currency, "en")
	}
	return m.printer.Sprintf("%.0f%%", pct)
}
