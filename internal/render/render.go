// Package render prepares stored briefing text for display.
package render

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

var (
	emphasisRe     = regexp.MustCompile(`\*\*.*?\*\*`)
	bulletMarkerRe = regexp.MustCompile(`^[*-]\s+`)
)

// Render splits text into display lines. It accepts any input: an
// unterminated ** stays literal and empty lines become empty paragraphs.
func Render(text string, pref domain.TypographyPreference) *domain.RenderedBriefing {
	if !pref.IsValid() {
		pref = domain.DefaultTypography()
	}

	rawLines := strings.Split(text, "\n")
	lines := make([]domain.RenderLine, 0, len(rawLines))
	for _, raw := range rawLines {
		lines = append(lines, RenderLine(strings.TrimSuffix(raw, "\r")))
	}

	return &domain.RenderedBriefing{Preference: pref, Lines: lines}
}

// RenderLine renders a single line
func RenderLine(line string) domain.RenderLine {
	fragments := splitEmphasis(line)

	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "- ") && !strings.HasPrefix(trimmed, "* ") {
		return domain.RenderLine{Kind: domain.LineParagraph, Fragments: fragments}
	}

	for i := range fragments {
		if fragments[i].Emphasis {
			continue
		}
		fragments[i].Text = bulletMarkerRe.ReplaceAllString(strings.TrimLeft(fragments[i].Text, " \t"), "")
		break
	}
	return domain.RenderLine{
		Kind:      domain.LineBullet,
		Marker:    domain.BulletGlyph,
		Fragments: compact(fragments),
	}
}

// splitEmphasis alternates plain and emphasized runs around **...** spans.
func splitEmphasis(line string) []domain.Fragment {
	var out []domain.Fragment
	last := 0
	for _, loc := range emphasisRe.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			out = append(out, domain.Fragment{Text: line[last:loc[0]]})
		}
		if inner := line[loc[0]+2 : loc[1]-2]; inner != "" {
			out = append(out, domain.Fragment{Text: inner, Emphasis: true})
		}
		last = loc[1]
	}
	if last < len(line) {
		out = append(out, domain.Fragment{Text: line[last:]})
	}
	return out
}

func compact(fragments []domain.Fragment) []domain.Fragment {
	out := fragments[:0]
	for _, f := range fragments {
		if f.Text != "" {
			out = append(out, f)
		}
	}
	return out
}
