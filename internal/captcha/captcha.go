// Package captcha implements the human-verification code shown on the
// portal login screens. Codes are display-only gates, not a security
// boundary, so math/rand is sufficient.
package captcha

import (
	"math/rand"
	"strings"
	"sync"
)

// Alphabet excludes visually ambiguous characters (0/O, 1/I).
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length is the number of characters in a code.
const Length = 6

// Challenge holds the current code for one login screen. Safe for
// concurrent use.
type Challenge struct {
	mu   sync.Mutex
	code string
	rnd  func(n int) int
}

// New creates a challenge with a freshly generated code.
func New() *Challenge {
	c := &Challenge{rnd: rand.Intn}
	c.Refresh()
	return c
}

func (c *Challenge) generate() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(Alphabet[c.rnd(len(Alphabet))])
	}
	return b.String()
}

// Code returns the value currently displayed to the user.
func (c *Challenge) Code() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code
}

// Refresh replaces the code with a new one and returns it.
func (c *Challenge) Refresh() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.code = c.generate()
	return c.code
}

// Check compares input against the current code, ignoring case. On mismatch
// the code is regenerated so the old value can no longer validate.
func (c *Challenge) Check(input string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.ToUpper(strings.TrimSpace(input)) == c.code {
		return true
	}
	c.code = c.generate()
	return false
}
