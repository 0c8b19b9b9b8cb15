// Package runid generates identifiers for simulation runs. An id is a
// UUIDv7 encoded as 26 lowercase characters of Crockford's base32, so ids
// sort by creation time.
package runid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32, lowercase
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded id
const Length = 26

// New returns a fresh run id
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// only fails when the system entropy source does
		panic("runid: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are left
// padded with two zero bits, which keeps the first character in 0-7.
func Encode(id uuid.UUID) string {
	var b strings.Builder
	b.Grow(Length)
	for i := range Length {
		var v byte
		for bit := range 5 {
			pos := i*5 + bit - 2
			v <<= 1
			if pos >= 0 {
				v |= (id[pos/8] >> (7 - pos%8)) & 1
			}
		}
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

// parse decodes an id produced by Encode
func parse(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := validate(s); err != nil {
		return id, err
	}
	for i := range Length {
		v := byte(strings.IndexByte(alphabet, s[i]))
		for bit := range 5 {
			pos := i*5 + bit - 2
			if pos < 0 {
				continue
			}
			if v&(1<<(4-bit)) != 0 {
				id[pos/8] |= 1 << (7 - pos%8)
			}
		}
	}
	return id, nil
}

// validate checks that s has the shape of a run id
func validate(s string) error {
	if len(s) != Length {
		return fmt.Errorf("run ID must be exactly %d characters, got %d", Length, len(s))
	}
	if s[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", s[0])
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
	}
	return nil
}
