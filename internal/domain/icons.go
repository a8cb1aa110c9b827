package domain

import "strings"

const DefaultCompanyIcon = "🏢"

var builtinIcons = map[string]string{
	"Amazon":    "🅰️",
	"Tesla":     "🏎️",
	"Microsoft": "Ⓜ️",
	"Google":    "🌟",
	"Apple":     "🍎",
	"Meta":      "📘",
	"Netflix":   "🎬",
}

// BuiltinIcons returns a copy of the compiled-in company glyphs.
func BuiltinIcons() map[string]string {
	out := make(map[string]string, len(builtinIcons))
	for k, v := range builtinIcons {
		out[k] = v
	}
	return out
}

// IconTable maps exact company names to display glyphs. It is built once at
// startup and never changes afterwards; the zero value resolves everything to
// DefaultCompanyIcon.
type IconTable struct {
	icons    map[string]string
	fallback string
}

// NewIconTable layers overrides on top of the built-in glyphs. Empty fallback
// keeps DefaultCompanyIcon.
func NewIconTable(overrides map[string]string, fallback string) IconTable {
	icons := BuiltinIcons()
	for name, glyph := range overrides {
		name = strings.TrimSpace(name)
		if name == "" || glyph == "" {
			continue
		}
		icons[name] = glyph
	}
	if fallback == "" {
		fallback = DefaultCompanyIcon
	}
	return IconTable{icons: icons, fallback: fallback}
}

func (t IconTable) Resolve(company string) string {
	if glyph, ok := t.icons[company]; ok {
		return glyph
	}
	if t.fallback == "" {
		return DefaultCompanyIcon
	}
	return t.fallback
}

func (t IconTable) Len() int { return len(t.icons) }
