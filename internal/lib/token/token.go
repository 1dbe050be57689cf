package token

import (
	"crypto/rand"
	"fmt"
)

// Alphabet excludes visually ambiguous characters (0/O, 1/I/l) so a code can
// be retyped from a screenshot or read aloud without mistakes. Its length is a
// power of two, so indexing random bytes by modulo introduces no bias.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Generate returns a fixed-length invite code drawn from Alphabet using a
// cryptographically secure source. A predictable invite code is an
// access-control hole, so math/rand is not acceptable here.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token: invalid code length %d", length)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token: failed to read random bytes: %w", err)
	}

	for i := range buf {
		buf[i] = Alphabet[int(buf[i])%len(Alphabet)]
	}

	return string(buf), nil
}
