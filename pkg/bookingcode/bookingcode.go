// Package bookingcode generates the short human-readable codes clients use
// to confirm or cancel a booking over chat.
package bookingcode

import (
	"crypto/rand"
	"fmt"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Length keeps codes easy to type in a chat message. Uniqueness is
	// enforced per tenant by the bookings table constraint.
	Length = 6
)

// Generate returns a random code like "AB12CD".
func Generate() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("bookingcode: read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
