package validation

import (
	"regexp"

	domain "payloow/internal/errors"
	"payloow/internal/services/paystack"

	"github.com/shopspring/decimal"
)

var bvnPattern = regexp.MustCompile(`^\d{11}$`)

func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Validation("amount must be greater than 0")
	}
	return nil
}

func ValidateBVN(bvn string) error {
	if !bvnPattern.MatchString(bvn) {
		return domain.Validation("BVN must be 11 digits")
	}
	return nil
}

func ValidateBankDetails(details paystack.BankDetails) error {
	if details.Name == "" || details.AccountNumber == "" || details.BankCode == "" {
		return domain.Validation("Complete bank details required")
	}
	return nil
}
