package colour

import "math"

// Luminance calculates the relative luminance of a colour.
// Channels are weighted on their normalised (0-1) values without gamma
// linearisation. Returns a value between 0 (darkest) and 1 (lightest).
func Luminance(c RGB) float64 {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio calculates the contrast ratio between two colours.
// Returns a value between 1 and 21. The ratio is symmetric in its arguments.
func ContrastRatio(a, b RGB) float64 {
	l1 := Luminance(a)
	l2 := Luminance(b)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// HueDistance calculates the circular distance between two hues on the 0-1 scale.
// Returns a value between 0 and 0.5.
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(h1 - h2)
	return math.Min(diff, 1-diff)
}

// RGBToHSL converts RGB to HSL colour space.
// Returns hue, saturation and lightness, each in the range 0-1.
func RGBToHSL(rgb RGB) (h, s, l float64) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l = (maxVal + minVal) / 2.0

	// Achromatic.
	if delta == 0 {
		return 0, 0, l
	}

	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}

	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}
	h /= 6

	return h, clamp01(s), clamp01(l)
}

// HSLToRGB converts HSL to RGB colour space.
// h is wrapped into [0, 1); s and l are clamped to [0, 1]. Channels are truncated.
func HSLToRGB(h, s, l float64) RGB {
	h = wrapHue(h)
	s = clamp01(s)
	l = clamp01(l)

	if s == 0 {
		v := channel(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: channel(hueToRGB(p, q, h+1.0/3.0)),
		G: channel(hueToRGB(p, q, h)),
		B: channel(hueToRGB(p, q, h-1.0/3.0)),
	}
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}

	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// AdjustLightness scales the lightness of a colour by factor.
// factor > 1 makes the colour lighter, factor < 1 darker.
func AdjustLightness(c RGB, factor float64) RGB {
	h, s, l := RGBToHSL(c)
	return HSLToRGB(h, s, clamp01(l*factor))
}

// SetLightness replaces the lightness of a colour, keeping hue and saturation.
func SetLightness(c RGB, target float64) RGB {
	h, s, _ := RGBToHSL(c)
	return HSLToRGB(h, s, clamp01(target))
}

// SetSaturation replaces the saturation of a colour, keeping hue and lightness.
func SetSaturation(c RGB, target float64) RGB {
	h, _, l := RGBToHSL(c)
	return HSLToRGB(h, clamp01(target), l)
}

// Lightness returns the HSL lightness of a colour.
func Lightness(c RGB) float64 {
	_, _, l := RGBToHSL(c)
	return l
}

// Hue returns the HSL hue of a colour on the 0-1 scale.
func Hue(c RGB) float64 {
	h, _, _ := RGBToHSL(c)
	return h
}

// channel truncates a normalised channel value into a byte.
func channel(v float64) uint8 {
	v = math.Floor(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// wrapHue maps any hue onto [0, 1).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	if h >= 1 {
		h = 0
	}
	return h
}
