package relation

import (
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
)

// DefaultSchema is omitted from relation keys.
const DefaultSchema = "public"

var plainIdent = regexp.MustCompile(`^[a-z_][a-z0-9_$]*$`)

// Name is a possibly schema-qualified relation identifier. Both parts keep
// the exact spelling PostgreSQL stores in its catalog.
type Name struct {
	Schema string
	Local  string
}

// ParseName converts a user or catalog supplied identifier into a Name.
// Unquoted parts are folded to lower case the way PostgreSQL does it,
// double-quoted parts are taken verbatim.
func ParseName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	parts, err := splitIdent(s)
	if err != nil {
		return Name{}, err
	}

	switch len(parts) {
	case 1:
		return Name{Local: parts[0]}, nil
	case 2:
		return Name{Schema: parts[0], Local: parts[1]}, nil
	default:
		return Name{}, InvalidNameError(s, "too many dot-separated parts")
	}
}

// MustParseName is ParseName for names known to be valid.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func splitIdent(s string) ([]string, error) {
	if s == "" {
		return nil, InvalidNameError(s, "name is empty")
	}

	var res []string
	var cur strings.Builder
	var quoted, wasQuoted bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quoted && c == '"':
			if i+1 < len(s) && s[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			quoted = false
		case quoted:
			cur.WriteByte(c)
		case c == '"':
			quoted = true
			wasQuoted = true
		case c == '.':
			part, err := closePart(s, cur.String(), wasQuoted)
			if err != nil {
				return nil, err
			}
			res = append(res, part)
			cur.Reset()
			wasQuoted = false
		default:
			cur.WriteByte(c)
		}
	}
	if quoted {
		return nil, InvalidNameError(s, "unterminated quoted identifier")
	}
	part, err := closePart(s, cur.String(), wasQuoted)
	if err != nil {
		return nil, err
	}
	return append(res, part), nil
}

func closePart(s, part string, quoted bool) (string, error) {
	if part == "" {
		return "", InvalidNameError(s, "empty identifier part")
	}
	if quoted {
		return part, nil
	}
	return strings.ToLower(part), nil
}

// QuoteIdent returns the identifier bare when PostgreSQL would read it back
// unchanged, otherwise double-quoted. Like quote_ident, it quotes keywords
// that are not unreserved.
func QuoteIdent(s string) string {
	if plainIdent.MatchString(s) && !IsKeyword(s) {
		return s
	}
	return pgx.Identifier{s}.Sanitize()
}

// spellings lists the ways a server may render an identifier. Servers of
// different versions disagree on some keywords, so both the bare and the
// quoted form are accepted when reading catalog output.
func spellings(s string) []string {
	quoted := pgx.Identifier{s}.Sanitize()
	res := []string{QuoteIdent(s)}
	if res[0] != quoted {
		res = append(res, quoted)
	} else if plainIdent.MatchString(s) {
		res = append(res, s)
	}
	return res
}

// Key is the canonical spelling of the name. The same relation always
// produces the same key no matter how it was spelled by the caller.
func (n Name) Key() string {
	if n.Schema == "" || n.Schema == DefaultSchema {
		return QuoteIdent(n.Local)
	}
	return QuoteIdent(n.Schema) + "." + QuoteIdent(n.Local)
}

// Qualified is like Key, but keeps the public schema when it is known.
func (n Name) Qualified() string {
	if n.Schema == "" {
		return QuoteIdent(n.Local)
	}
	return QuoteIdent(n.Schema) + "." + QuoteIdent(n.Local)
}

// String implements fmt.Stringer.
func (n Name) String() string {
	return n.Key()
}

// FileBase is the unquoted name used for definition files.
func (n Name) FileBase() string {
	if n.Schema == "" || n.Schema == DefaultSchema {
		return n.Local
	}
	return n.Schema + "." + n.Local
}

// IsZero reports whether the name is empty.
func (n Name) IsZero() bool {
	return n.Local == ""
}

// Sibling returns a name with the same schema and a different local part.
func (n Name) Sibling(local string) Name {
	return Name{Schema: n.Schema, Local: local}
}

// Same reports whether two names point to the same relation, treating an
// absent schema as the public one.
func (n Name) Same(other Name) bool {
	return n.Key() == other.Key()
}
