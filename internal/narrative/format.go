package narrative

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// formatAmount renders an amount with thousands separators, keeping two
// decimals only when the amount has a fractional part.
func formatAmount(amount decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	if amount.Equal(amount.Truncate(0)) {
		return p.Sprintf("%d", amount.IntPart())
	}
	return p.Sprintf("%.2f", amount.InexactFloat64())
}
