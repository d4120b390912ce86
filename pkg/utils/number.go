package utils

import "github.com/shopspring/decimal"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// Money converte um valor para decimal, para somas que não dependem da ordem
func Money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Mean divide o total pela quantidade; quantidade zero resulta em zero
func Mean(total decimal.Decimal, count int) float64 {
	if count == 0 {
		return 0
	}

	return total.Div(decimal.NewFromInt(int64(count))).InexactFloat64()
}

// Percent calcula 100 * part / whole; whole zero resulta em zero
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}

	return float64(part) / float64(whole) * 100
}
