package usecase

import "strings"

// ValidateCardNumber checks the card number format: 13 to 19 digits,
// spaces ignored.
func ValidateCardNumber(number string) bool {
	cleaned := strings.ReplaceAll(number, " ", "")
	if len(cleaned) < 13 || len(cleaned) > 19 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
