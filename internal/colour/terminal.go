package colour

import "fmt"

// DefaultTint is how far each ANSI hue is pulled towards its nearest accent.
const DefaultTint = 0.35

// Terminal is the 16 colour ANSI palette, indexed color0..color15.
type Terminal [16]RGB

// SlotName returns the conventional key for slot i ("color0".."color15").
func SlotName(i int) string {
	return fmt.Sprintf("color%d", i)
}

// ansiSlot is a chromatic terminal slot: the base ANSI hue in degrees and
// the fixed saturation/lightness it is rendered at.
type ansiSlot struct {
	index      int
	hueDegrees float64
	saturation float64
	lightness  float64
}

// ansiSlots lists the twelve blended slots. Bright variants (9-14) use
// higher saturation and lightness.
var ansiSlots = []ansiSlot{
	{1, 0, 0.60, 0.50},    // red
	{2, 120, 0.50, 0.48},  // green
	{3, 45, 0.60, 0.55},   // yellow
	{4, 220, 0.50, 0.50},  // blue
	{5, 300, 0.45, 0.50},  // magenta
	{6, 180, 0.45, 0.48},  // cyan
	{9, 0, 0.65, 0.62},    // bright red
	{10, 120, 0.55, 0.58}, // bright green
	{11, 50, 0.65, 0.65},  // bright yellow
	{12, 220, 0.55, 0.60}, // bright blue
	{13, 300, 0.50, 0.60}, // bright magenta
	{14, 180, 0.50, 0.58}, // bright cyan
}

// minTerminalAccents is how many accent hues are considered for blending.
const minTerminalAccents = 4

// SemanticColour blends baseHue towards themeHue by tint along the shorter
// way round the hue circle and renders it at the given saturation/lightness.
// tint 0 keeps the pure ANSI hue, 1 takes the accent hue.
func SemanticColour(baseHue, themeHue, tint, saturation, lightness float64) RGB {
	diff := themeHue - baseHue
	if diff > 0.5 {
		diff--
	} else if diff <= -0.5 {
		diff++
	}
	return HSLToRGB(wrapHue(baseHue+diff*tint), saturation, lightness)
}

// GenerateTerminalColours builds the 16 colour palette. Chromatic slots are
// tinted towards the nearest of the first four accent hues; black and white
// slots come straight from the surface and text tiers.
func GenerateTerminalColours(accents []RGB, surfaces, texts Tiers, tint float64) Terminal {
	padded := PadAccents(accents, minTerminalAccents, surfaces.Primary)
	hues := make([]float64, minTerminalAccents)
	for i := range hues {
		hues[i] = Hue(padded[i])
	}

	var t Terminal
	t[0] = surfaces.Tertiary
	t[7] = texts.Tertiary
	t[8] = surfaces.Primary
	t[15] = texts.Primary

	for _, slot := range ansiSlots {
		base := slot.hueDegrees / 360.0
		t[slot.index] = SemanticColour(base, nearestHue(hues, base), tint, slot.saturation, slot.lightness)
	}
	return t
}

// nearestHue returns the hue in hues closest to target. Earlier entries win ties.
func nearestHue(hues []float64, target float64) float64 {
	best := hues[0]
	bestDist := 1.0
	for _, h := range hues {
		if d := HueDistance(h, target); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}
