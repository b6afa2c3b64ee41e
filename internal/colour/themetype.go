package colour

import (
	"fmt"
	"strings"
)

// ThemeType represents whether a theme is light-on-dark or dark-on-light.
type ThemeType int

const (
	// ThemeAuto detects the theme type from the extracted accents.
	ThemeAuto ThemeType = iota
	// ThemeDark is a dark theme (light text on dark surfaces).
	ThemeDark
	// ThemeLight is a light theme (dark text on light surfaces).
	ThemeLight
)

// String returns the string representation of a ThemeType.
func (t ThemeType) String() string {
	switch t {
	case ThemeDark:
		return "dark"
	case ThemeLight:
		return "light"
	default:
		return "auto"
	}
}

// ParseThemeType parses "auto", "dark" or "light" (case-insensitive).
func ParseThemeType(s string) (ThemeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ThemeAuto, nil
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	default:
		return ThemeAuto, fmt.Errorf("invalid theme type: %s (valid: auto, dark, light)", s)
	}
}
