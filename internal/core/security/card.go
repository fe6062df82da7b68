// Package security holds the card security material helpers: Luhn-valid
// card number generation and CVV hashing. The raw CVV is never stored, only
// its SHA256 hash.
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// GenerateCardNumber creates a random 16-digit card number with the given
// issuer prefix and a valid Luhn check digit.
func GenerateCardNumber(prefix string) (string, error) {
	digits := prefix
	for len(digits) < 15 {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate card number: %w", err)
		}
		digits += n.String()
	}
	return digits + luhnCheckDigit(digits), nil
}

// ValidCardNumber runs the standard Mod 10 check on a card number, ignoring
// spaces and dashes.
func ValidCardNumber(number string) bool {
	clean := strings.ReplaceAll(number, " ", "")
	clean = strings.ReplaceAll(clean, "-", "")
	if len(clean) < 12 {
		return false
	}

	sum := 0
	alternate := false
	for i := len(clean) - 1; i >= 0; i-- {
		n, err := strconv.Atoi(string(clean[i]))
		if err != nil {
			return false
		}
		if alternate {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alternate = !alternate
	}
	return sum%10 == 0
}

// HashCVV returns the hex SHA256 of a CVV, the only form it is stored in.
func HashCVV(cvv string) string {
	hash := sha256.Sum256([]byte(cvv))
	return hex.EncodeToString(hash[:])
}

// VerifyCVV compares a provided CVV against the stored hash in constant time.
func VerifyCVV(cvv, storedHash string) bool {
	computed := HashCVV(cvv)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// luhnCheckDigit computes the digit that makes the full number pass Mod 10.
func luhnCheckDigit(partial string) string {
	sum := 0
	alternate := true
	for i := len(partial) - 1; i >= 0; i-- {
		n, _ := strconv.Atoi(string(partial[i]))
		if alternate {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alternate = !alternate
	}
	return strconv.Itoa((10 - sum%10) % 10)
}
