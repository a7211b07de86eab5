package widget

import (
	"errors"
	"strings"
)

// Theme only affects presentation colours.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrInvalidTheme = errors.New("invalid theme: must be light or dark")

// ParseTheme accepts any casing. Empty means light.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return ThemeLight, nil
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", ErrInvalidTheme
	}
}

// Toggled flips light and dark.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Palette holds the colours used by every view.
type Palette struct {
	Background string
	Foreground string
	ResultBox  string
	HistoryBox string
	Bar        string
}

var (
	lightPalette = Palette{Background: "#ffffff", Foreground: "#212121", ResultBox: "#eeeeee", HistoryBox: "#dddddd", Bar: "#3f51b5"}
	darkPalette  = Palette{Background: "#121212", Foreground: "#f5f5f5", ResultBox: "#333333", HistoryBox: "#444444", Bar: "#3f51b5"}
)

// Palette returns the colours for t. Unknown themes render as light.
func (t Theme) Palette() Palette {
	if t == ThemeDark {
		return darkPalette
	}
	return lightPalette
}
