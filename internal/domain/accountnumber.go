package domain

import (
	"fmt"
	"math/rand"
	"regexp"
)

// ATM is the reserved counterparty sentinel for deposit and withdrawal
// legs that do not involve another account in this ledger.
const ATM = "ATM"

var accountNumberPattern = regexp.MustCompile(`^EE\d{4}$`)

// ValidAccountNumber reports whether s matches the EE-prefixed
// four-digit account number format.
func ValidAccountNumber(s string) bool {
	return accountNumberPattern.MatchString(s)
}

// NewAccountNumber returns a random account number between
// EE1000 and EE9999.
func NewAccountNumber() string {
	return fmt.Sprintf("EE%d", rand.Intn(9000)+1000)
}
