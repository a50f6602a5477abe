package bcbp

import (
	"strings"
	"unicode"
)

// Normalize cleans a raw scan before any strategy looks at it. Newlines,
// carriage returns and tabs are dropped, then everything outside printable
// ASCII is filtered out. Internal spaces survive: both strategies rely on
// space as a token delimiter or as padding that is trimmed per field, never
// up front. Normalize always succeeds and is idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if r > unicode.MaxASCII || unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
