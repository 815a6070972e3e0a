package po

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var pluralFormsRegex = regexp.MustCompile(`(?i)^nplurals\s*=\s*(\d+)\s*;\s*plural\s*=\s*(.+?)\s*;?\s*$`)

// PluralForms is the parsed Plural-Forms header. Expression is kept as
// text and never evaluated.
type PluralForms struct {
	NPlurals   int
	Expression string
}

// ParsePluralForms parses a value such as "nplurals=2; plural=(n != 1);".
func ParsePluralForms(value string) (PluralForms, error) {
	m := pluralFormsRegex.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return PluralForms{}, fmt.Errorf("invalid Plural-Forms %q", value)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return PluralForms{}, fmt.Errorf("invalid nplurals in Plural-Forms %q: %w", value, err)
	}
	if n < 1 {
		return PluralForms{}, fmt.Errorf("nplurals must be at least 1 in Plural-Forms %q", value)
	}
	expr := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[2]), ";"))
	return PluralForms{NPlurals: n, Expression: expr}, nil
}

// String renders the header value.
func (p PluralForms) String() string {
	return fmt.Sprintf("nplurals=%d; plural=%s;", p.NPlurals, p.Expression)
}
