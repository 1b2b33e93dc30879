package utils

import (
	"crypto/rand"
	"math/big"
)

// codeAlphabet skips glyphs users misread when typing a code by hand
// (0/O, 1/I/l).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateRandomToken returns a short verification code for MFA and
// password reset emails.
func GenerateRandomToken(length int) string {
	max := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand failure means a broken platform
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code)
}
