// Package gameid creates sortable identifiers for recorded sessions: a UUIDv7
// rendered as 26 characters of TypeID base32.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/randutil"
)

// Base32 alphabet used by TypeID (Crockford's base32, lower case)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an id.
const Length = 26

// Generator creates ids from a clock and a random source.
type Generator struct {
	clock quartz.Clock
	rng   randutil.Source
}

// NewGenerator creates a generator. A nil clock uses wall time and a nil
// source uses crypto/rand; pass both for reproducible ids.
func NewGenerator(clock quartz.Clock, rng randutil.Source) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// New creates an id from wall time and crypto/rand.
func New() string {
	return NewGenerator(nil, nil).New()
}

// New creates an id.
func (g *Generator) New() string {
	return encode(g.uuid())
}

// uuid lays out a UUIDv7: 48 bits of Unix milliseconds, the version nibble,
// the variant bits and random data everywhere else.
func (g *Generator) uuid() [16]byte {
	var u [16]byte

	ms := g.clock.Now().UnixMilli()
	for i := range 6 {
		u[i] = byte(ms >> (40 - 8*i))
	}

	if g.rng != nil {
		for i := 6; i < 16; i++ {
			u[i] = byte(g.rng.IntN(256))
		}
	} else if _, err := rand.Read(u[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	u[6] = (u[6] & 0x0f) | 0x70
	u[8] = (u[8] & 0x3f) | 0x80
	return u
}

// encode writes the 128 bits as a 130-bit big-endian number with two leading
// zero bits, five bits per character.
func encode(u [16]byte) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for j := range 5 {
			v <<= 1
			if bit := i*5 + j - 2; bit >= 0 && u[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

func decode(id string) ([16]byte, error) {
	var u [16]byte
	if err := Validate(id); err != nil {
		return u, err
	}
	for i := range Length {
		v := byte(strings.IndexByte(alphabet, id[i]))
		for j := range 5 {
			bit := i*5 + j - 2
			if bit >= 0 && v&(0x10>>j) != 0 {
				u[bit/8] |= 0x80 >> (bit % 8)
			}
		}
	}
	return u, nil
}

// Validate checks if an id is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	// The two padding bits keep the first character within 0-7.
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

// Time returns the millisecond timestamp embedded in an id.
func Time(id string) (time.Time, error) {
	u, err := decode(id)
	if err != nil {
		return time.Time{}, err
	}
	var ms int64
	for i := range 6 {
		ms = ms<<8 | int64(u[i])
	}
	return time.UnixMilli(ms), nil
}
