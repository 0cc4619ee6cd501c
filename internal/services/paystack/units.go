package paystack

import "github.com/shopspring/decimal"

// ToMinorUnits converts a major-unit amount (naira) to the processor's
// minor unit (kobo).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// FromMinorUnits converts a minor-unit amount from the processor to the
// engine's major-unit decimal.
func FromMinorUnits(amountMinor int64) decimal.Decimal {
	return decimal.New(amountMinor, -2)
}
