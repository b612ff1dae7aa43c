// Package refnumber implements model 97 (ISO 7064, MOD 97-10) structured
// payment references — the "poziv na broj" printed on Serbian tax payment
// slips. The two control digits precede the base number.
package refnumber

import (
	"fmt"
	"strings"
)

// Normalize strips the separators banks print into reference numbers.
func Normalize(ref string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '/' {
			return -1
		}
		return r
	}, ref)
}

// CheckDigits computes the two model 97 control digits for a base number:
// 98 minus (base*100 mod 97), zero-padded.
func CheckDigits(base string) (string, error) {
	base = Normalize(base)
	if base == "" {
		return "", fmt.Errorf("empty reference base")
	}
	rem, err := mod97(base + "00")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d", 98-rem), nil
}

// Generate prepends the control digits to the base number.
func Generate(base string) (string, error) {
	cc, err := CheckDigits(base)
	if err != nil {
		return "", err
	}
	return cc + Normalize(base), nil
}

// Valid reports whether a full reference number carries correct control
// digits.
func Valid(ref string) bool {
	ref = Normalize(ref)
	if len(ref) < 3 {
		return false
	}
	cc, err := CheckDigits(ref[2:])
	if err != nil {
		return false
	}
	return cc == ref[:2]
}

// mod97 reduces an arbitrarily long digit string modulo 97 without big-int
// allocation.
func mod97(digits string) (int, error) {
	rem := 0
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("reference number contains non-digit %q", r)
		}
		rem = (rem*10 + int(r-'0')) % 97
	}
	return rem, nil
}
