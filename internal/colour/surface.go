package colour

// Tiers is a five step shade ramp used for surfaces and text.
type Tiers struct {
	Primary    RGB
	Secondary  RGB
	Tertiary   RGB
	Quaternary RGB
	Quinary    RGB
}

// tierStep scales the seed saturation and fixes the lightness of one tier.
type tierStep struct {
	satScale  float64
	lightness float64
}

// Surface ramps: near-black getting lighter, near-white getting darker.
var (
	darkSurfaceSteps = [5]tierStep{
		{0.15, 0.07},
		{0.18, 0.10},
		{0.20, 0.14},
		{0.12, 0.22},
		{0.10, 0.28},
	}
	lightSurfaceSteps = [5]tierStep{
		{0.10, 0.96},
		{0.12, 0.92},
		{0.15, 0.88},
		{0.08, 0.82},
		{0.06, 0.76},
	}
)

// Text ramps: primary text has the strongest contrast with surface.primary.
var (
	darkTextSteps = [5]tierStep{
		{0.20, 0.92},
		{0.15, 0.82},
		{0.10, 0.72},
		{0.08, 0.58},
		{0.05, 0.48},
	}
	lightTextSteps = [5]tierStep{
		{0.20, 0.10},
		{0.15, 0.25},
		{0.10, 0.40},
		{0.08, 0.55},
		{0.05, 0.65},
	}
)

// GenerateSurfaces derives the surface tiers from the seed's hue and
// saturation. The seed's lightness is ignored. Any theme other than
// ThemeLight produces dark surfaces.
func GenerateSurfaces(seed RGB, theme ThemeType) Tiers {
	steps := darkSurfaceSteps
	if theme == ThemeLight {
		steps = lightSurfaceSteps
	}
	return buildTiers(seed, steps)
}

// GenerateTextColours derives the text tiers from surface.primary.
func GenerateTextColours(surfacePrimary RGB, theme ThemeType) Tiers {
	steps := darkTextSteps
	if theme == ThemeLight {
		steps = lightTextSteps
	}
	return buildTiers(surfacePrimary, steps)
}

func buildTiers(seed RGB, steps [5]tierStep) Tiers {
	h, s, _ := RGBToHSL(seed)
	at := func(i int) RGB {
		return HSLToRGB(h, s*steps[i].satScale, steps[i].lightness)
	}
	return Tiers{
		Primary:    at(0),
		Secondary:  at(1),
		Tertiary:   at(2),
		Quaternary: at(3),
		Quinary:    at(4),
	}
}
