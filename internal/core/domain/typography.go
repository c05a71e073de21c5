package domain

// FontScale is one of four ordinal reading sizes
type FontScale int

const (
	FontSmall FontScale = iota
	FontBase
	FontLarge
	FontXLarge
)

var fontScaleNames = []string{"sm", "base", "lg", "xl"}

// String returns the short name of the scale
func (f FontScale) String() string {
	if f < FontSmall || f > FontXLarge {
		return "unknown"
	}
	return fontScaleNames[f]
}

// IsValid checks if the scale is one of the four steps
func (f FontScale) IsValid() bool {
	return f >= FontSmall && f <= FontXLarge
}

// LineSpacing is one of four ordinal line-height steps
type LineSpacing int

const (
	SpacingTight LineSpacing = iota
	SpacingNormal
	SpacingRelaxed
	SpacingLoose
)

var lineSpacingNames = []string{"tight", "normal", "relaxed", "loose"}

// String returns the short name of the spacing
func (l LineSpacing) String() string {
	if l < SpacingTight || l > SpacingLoose {
		return "unknown"
	}
	return lineSpacingNames[l]
}

// IsValid checks if the spacing is one of the four steps
func (l LineSpacing) IsValid() bool {
	return l >= SpacingTight && l <= SpacingLoose
}

// ParseFontScale reads a scale by name
func ParseFontScale(s string) (FontScale, error) {
	for i, name := range fontScaleNames {
		if name == s {
			return FontScale(i), nil
		}
	}
	return 0, ErrInvalidInput
}

// ParseLineSpacing reads a spacing by name
func ParseLineSpacing(s string) (LineSpacing, error) {
	for i, name := range lineSpacingNames {
		if name == s {
			return LineSpacing(i), nil
		}
	}
	return 0, ErrInvalidInput
}

// MarshalText encodes the scale by name
func (f FontScale) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, ErrInvalidInput
	}
	return []byte(f.String()), nil
}

// UnmarshalText decodes a scale name
func (f *FontScale) UnmarshalText(b []byte) error {
	v, err := ParseFontScale(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MarshalText encodes the spacing by name
func (l LineSpacing) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, ErrInvalidInput
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a spacing name
func (l *LineSpacing) UnmarshalText(b []byte) error {
	v, err := ParseLineSpacing(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// TypographyPreference holds the reader's chosen font scale and spacing
type TypographyPreference struct {
	FontScale   FontScale   `json:"font_scale"`
	LineSpacing LineSpacing `json:"line_spacing"`
}

// DefaultTypography is base size with relaxed spacing
func DefaultTypography() TypographyPreference {
	return TypographyPreference{FontScale: FontBase, LineSpacing: SpacingRelaxed}
}

// IsValid checks both axes
func (p TypographyPreference) IsValid() bool {
	return p.FontScale.IsValid() && p.LineSpacing.IsValid()
}

// LineKind classifies a rendered line
type LineKind string

const (
	LineParagraph LineKind = "paragraph"
	LineBullet    LineKind = "bullet"
)

// BulletGlyph leads every bullet line
const BulletGlyph = "•"

// Fragment is a run of text, emphasized or plain
type Fragment struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// RenderLine is one display line of a briefing
type RenderLine struct {
	Kind      LineKind   `json:"kind"`
	Marker    string     `json:"marker,omitempty"`
	Fragments []Fragment `json:"fragments"`
}

// PlainText joins the line's fragments without markup
func (l RenderLine) PlainText() string {
	var out string
	for _, f := range l.Fragments {
		out += f.Text
	}
	return out
}

// RenderedBriefing is a briefing prepared for display
type RenderedBriefing struct {
	RecordID   string               `json:"record_id,omitempty"`
	Title      string               `json:"title,omitempty"`
	Preference TypographyPreference `json:"preference"`
	Lines      []RenderLine         `json:"lines"`
}
