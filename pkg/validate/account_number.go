package validate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ShiraazMoollatjie/goluhn"
)

const accountIDDigits = 10

var ErrInvalidAccountNumber = errors.New("invalid account number")

func IsLuhn(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}

// AccountNumber renders an account id as ten zero-padded digits followed by a Luhn check digit.
func AccountNumber(accountID int) string {
	_, number, err := goluhn.Calculate(fmt.Sprintf("%0*d", accountIDDigits, accountID))
	if err != nil {
		return ""
	}
	return number
}

// ParseAccountNumber reverses AccountNumber.
func ParseAccountNumber(number string) (int, error) {
	if len(number) != accountIDDigits+1 || !IsLuhn(number) {
		return 0, ErrInvalidAccountNumber
	}
	id, err := strconv.Atoi(number[:accountIDDigits])
	if err != nil || id <= 0 {
		return 0, ErrInvalidAccountNumber
	}
	return id, nil
}
