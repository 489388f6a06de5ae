package output

import (
	"github.com/shopspring/decimal"

	money "github.com/rpgo/portfolio-survival/pkg/decimal"
)

// FormatCurrency formats an amount as whole dollars with thousands separators ("$1,234,568").
func FormatCurrency(amount float64) string { return money.NewMoney(amount).FormatWhole() }

// FormatCurrencyCents formats an amount with cents ("$1,234.57").
func FormatCurrencyCents(amount float64) string { return money.NewMoney(amount).Format() }

// FormatPercentage formats a value already on the percent scale with 2 decimals.
func FormatPercentage(percent float64) string {
	return decimal.NewFromFloat(percent).StringFixed(2) + "%"
}
