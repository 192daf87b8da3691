// Package tempname creates short-lived relation names for side-by-side
// operations.
package tempname

import (
	"strings"
	"unicode/utf8"

	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// MaxIdentifierLength is PostgreSQL's NAMEDATALEN - 1.
const MaxIdentifierLength = 63

const (
	saltLength   = 8
	digestLength = 16
)

// Generator creates temporary names. All names made by the same generator
// share a salt, so they are stable within one operation and differ from
// names made by concurrent operations on the same relation.
type Generator struct {
	maxLen int
	salt   string
}

// NewGenerator creates a generator with a random salt. A non-positive
// maxLen means MaxIdentifierLength.
func NewGenerator(maxLen int) *Generator {
	salt := strings.ReplaceAll(uuid.NewString(), "-", "")[:saltLength]
	return WithSalt(maxLen, salt)
}

// WithSalt creates a generator with a fixed salt.
func WithSalt(maxLen int, salt string) *Generator {
	if maxLen <= 0 {
		maxLen = MaxIdentifierLength
	}
	return &Generator{maxLen: maxLen, salt: salt}
}

// Salt returns the salt mixed into every generated name.
func (g *Generator) Salt() string {
	return g.salt
}

// Generate returns base_purpose_salt. If that is too long, the base is
// replaced by a digest of itself, and the purpose suffix is kept verbatim.
func (g *Generator) Generate(base, purpose string) string {
	suffix := "_" + purpose + "_" + g.salt
	res := base + suffix
	if len(res) <= g.maxLen {
		return res
	}

	digest := "h" + strings.ReplaceAll(gnuuid.New(base).String(), "-", "")[:digestLength]
	res = digest + suffix
	if len(res) > g.maxLen {
		// purpose is too long to keep as is
		res = truncate(res, g.maxLen)
	}
	return res
}

// truncate cuts s to at most n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
