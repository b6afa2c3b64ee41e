package colour

// DefaultMinContrast is the WCAG AA ratio for normal text.
const DefaultMinContrast = 4.5

// Lightness probes tried by EnsureContrast, in order.
var (
	// darkBackgroundProbes raise lightness until the accent stands out on a dark background.
	darkBackgroundProbes = []float64{0.50, 0.55, 0.60, 0.65, 0.70, 0.75, 0.80, 0.85, 0.90}
	// lightBackgroundProbes lower lightness for a light background.
	lightBackgroundProbes = []float64{0.40, 0.35, 0.30, 0.25, 0.20, 0.15, 0.10}
)

// Fallback lightness returned when no probe reaches the requested ratio.
const (
	darkBackgroundFallback  = 0.85
	lightBackgroundFallback = 0.15
)

// EnsureContrast adjusts the lightness of fg until its contrast against bg is
// at least minRatio, keeping hue and saturation. fg is returned unchanged when
// it already passes. When no probe passes, the extreme fallback lightness is
// used. A non-positive minRatio means DefaultMinContrast.
func EnsureContrast(fg, bg RGB, minRatio float64) RGB {
	if minRatio <= 0 {
		minRatio = DefaultMinContrast
	}
	if ContrastRatio(bg, fg) >= minRatio {
		return fg
	}

	h, s, _ := RGBToHSL(fg)

	probes, fallback := lightBackgroundProbes, lightBackgroundFallback
	if Luminance(bg) < 0.5 {
		probes, fallback = darkBackgroundProbes, darkBackgroundFallback
	}

	for _, l := range probes {
		candidate := HSLToRGB(h, s, l)
		if ContrastRatio(bg, candidate) >= minRatio {
			return candidate
		}
	}

	return HSLToRGB(h, s, fallback)
}

// Correction records an accent changed by CorrectAccents.
type Correction struct {
	Index int
	From  RGB
	To    RGB
}

// CorrectAccents runs EnsureContrast over every accent against bg. It returns
// the corrected accents and the list of changes.
func CorrectAccents(accents []RGB, bg RGB, minRatio float64) ([]RGB, []Correction) {
	out := make([]RGB, len(accents))
	var changes []Correction
	for i, a := range accents {
		out[i] = EnsureContrast(a, bg, minRatio)
		if out[i] != a {
			changes = append(changes, Correction{Index: i, From: a, To: out[i]})
		}
	}
	return out, changes
}
