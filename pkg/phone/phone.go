// Package phone normalizes Brazilian phone numbers so the same client is
// recognized regardless of how the messaging layer formats the number.
package phone

import "strings"

// Normalize strips formatting characters and the Brazilian country code.
// "+55 11 99999-8888", "5511999998888" and "11999998888" all normalize to
// "11999998888".
func Normalize(raw string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	s = strings.TrimPrefix(s, "+")

	// Country code only counts when a full local number follows it,
	// otherwise "55" could be the start of the local number itself.
	if strings.HasPrefix(s, "55") && len(s) >= 12 {
		s = s[2:]
	}

	return s
}

// Match reports whether two raw numbers refer to the same phone.
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	return na != "" && na == nb
}
