package normalisers

import (
	"strings"

	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Normaliser = (*TextNormaliser)(nil)

// TextNormaliser strips extraction noise from raw document text.
type TextNormaliser struct{}

// NewTextNormaliser creates a TextNormaliser.
func NewTextNormaliser() *TextNormaliser {
	return &TextNormaliser{}
}

// Normalise implements driven.Normaliser.
func (n *TextNormaliser) Normalise(content string) string {
	return Normalize(content)
}

// Normalize replaces every rune outside printable ASCII (plus \n, \r, \t)
// with a space, collapses whitespace runs to one space and trims the ends.
// It is total and idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))

	pendingSpace := false
	for _, r := range raw {
		if !keep(r) || isSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	return b.String()
}

func keep(r rune) bool {
	return (r >= 0x20 && r <= 0x7E) || r == '\n' || r == '\r' || r == '\t'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\r' || r == '\t'
}
