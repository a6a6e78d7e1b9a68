package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// mobilePattern matches an international number: 8 to 15 digits, no leading zero
var mobilePattern = regexp.MustCompile(`^[1-9][0-9]{7,14}$`)

// ValidateMobileNumber validates a mobile number and returns it normalized to
// +<digits>. Spaces, dashes and parentheses are stripped before validation.
func ValidateMobileNumber(raw string) (string, error) {
	stripped := strings.NewReplacer("-", "", " ", "", "(", "", ")", "", "+", "").Replace(raw)

	if stripped == "" {
		return "", fmt.Errorf("mobile number is required")
	}

	if !mobilePattern.MatchString(stripped) {
		return "", fmt.Errorf("invalid mobile number format")
	}

	return "+" + stripped, nil
}
