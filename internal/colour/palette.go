// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultAlpha is the alpha used by RGBA when no alpha is specified.
const DefaultAlpha = 0.95

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string with prefix (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return "#" + rgb.HexRaw()
}

// HexRaw returns the RGB colour as a hex string without prefix (e.g., "1A2B3C").
func (rgb RGB) HexRaw() string {
	return fmt.Sprintf("%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// RGBA returns the colour as a CSS rgba() string with the given alpha.
func (rgb RGB) RGBA(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", rgb.R, rgb.G, rgb.B, strconv.FormatFloat(alpha, 'f', -1, 64))
}

// Triple returns the channels as an int slice.
func (rgb RGB) Triple() []int {
	return []int{int(rgb.R), int(rgb.G), int(rgb.B)}
}

// ToRGB converts a color.Color to RGB, discarding alpha.
func ToRGB(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ParseHex parses "#RRGGBB", "RRGGBB" or the short "#RGB" form.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}

	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
