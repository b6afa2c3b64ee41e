package colour

import "testing"

func TestGenerateSurfaces(t *testing.T) {
	tests := []struct {
		name  string
		seed  RGB
		theme ThemeType
		want  Tiers
	}{
		{
			name:  "red dark",
			seed:  RGB{R: 248},
			theme: ThemeDark,
			want: Tiers{
				Primary:    RGB{R: 20, G: 15, B: 15},
				Secondary:  RGB{R: 30, G: 20, B: 20},
				Tertiary:   RGB{R: 42, G: 28, B: 28},
				Quaternary: RGB{R: 62, G: 49, B: 49},
				Quinary:    RGB{R: 78, G: 64, B: 64},
			},
		},
		{
			name:  "red light",
			seed:  RGB{R: 248},
			theme: ThemeLight,
			want: Tiers{
				Primary:    RGB{R: 245, G: 243, B: 243},
				Secondary:  RGB{R: 237, G: 232, B: 232},
				Tertiary:   RGB{R: 228, G: 219, B: 219},
				Quaternary: RGB{R: 212, G: 205, B: 205},
				Quinary:    RGB{R: 197, G: 190, B: 190},
			},
		},
		{
			name:  "grey seed",
			seed:  RGB{R: 128, G: 128, B: 128},
			theme: ThemeDark,
			want: Tiers{
				Primary:    RGB{R: 17, G: 17, B: 17},
				Secondary:  RGB{R: 25, G: 25, B: 25},
				Tertiary:   RGB{R: 35, G: 35, B: 35},
				Quaternary: RGB{R: 56, G: 56, B: 56},
				Quinary:    RGB{R: 71, G: 71, B: 71},
			},
		},
		{
			name:  "auto falls back to dark",
			seed:  RGB{R: 248},
			theme: ThemeAuto,
			want:  GenerateSurfaces(RGB{R: 248}, ThemeDark),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateSurfaces(tt.seed, tt.theme); got != tt.want {
				t.Errorf("GenerateSurfaces() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGenerateSurfacesIgnoresSeedLightness(t *testing.T) {
	dark := GenerateSurfaces(HSLToRGB(0.6, 0.7, 0.2), ThemeDark)
	light := GenerateSurfaces(HSLToRGB(0.6, 0.7, 0.8), ThemeDark)
	for _, pair := range [][2]RGB{
		{dark.Primary, light.Primary},
		{dark.Quinary, light.Quinary},
	} {
		if absDiff(pair[0].R, pair[1].R) > 1 || absDiff(pair[0].G, pair[1].G) > 1 || absDiff(pair[0].B, pair[1].B) > 1 {
			t.Errorf("surfaces differ with seed lightness: %v vs %v", pair[0], pair[1])
		}
	}
}

func TestGenerateTextColours(t *testing.T) {
	tests := []struct {
		name    string
		surface RGB
		theme   ThemeType
		want    Tiers
	}{
		{
			name:    "dark",
			surface: RGB{R: 20, G: 15, B: 15},
			theme:   ThemeDark,
			want: Tiers{
				Primary:    RGB{R: 235, G: 234, B: 234},
				Secondary:  RGB{R: 210, G: 208, B: 208},
				Tertiary:   RGB{R: 184, G: 182, B: 182},
				Quaternary: RGB{R: 149, G: 146, B: 146},
				Quinary:    RGB{R: 123, G: 121, B: 121},
			},
		},
		{
			name:    "light",
			surface: RGB{R: 245, G: 243, B: 243},
			theme:   ThemeLight,
			want: Tiers{
				Primary:    RGB{R: 25, G: 25, B: 25},
				Secondary:  RGB{R: 64, G: 62, B: 62},
				Tertiary:   RGB{R: 102, G: 101, B: 101},
				Quaternary: RGB{R: 141, G: 139, B: 139},
				Quinary:    RGB{R: 166, G: 165, B: 165},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateTextColours(tt.surface, tt.theme)
			if got != tt.want {
				t.Errorf("GenerateTextColours() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTierOrdering(t *testing.T) {
	for _, theme := range []ThemeType{ThemeDark, ThemeLight} {
		s := GenerateSurfaces(RGB{R: 40, G: 90, B: 200}, theme)
		x := GenerateTextColours(s.Primary, theme)

		surfaces := []RGB{s.Primary, s.Secondary, s.Tertiary, s.Quaternary, s.Quinary}
		texts := []RGB{x.Primary, x.Secondary, x.Tertiary, x.Quaternary, x.Quinary}

		for i := 1; i < len(surfaces); i++ {
			prev, cur := Lightness(surfaces[i-1]), Lightness(surfaces[i])
			if theme == ThemeDark && cur <= prev || theme == ThemeLight && cur >= prev {
				t.Errorf("%v surface tier %d lightness %v out of order after %v", theme, i, cur, prev)
			}
		}
		for i := 1; i < len(texts); i++ {
			prev := ContrastRatio(texts[i-1], s.Primary)
			cur := ContrastRatio(texts[i], s.Primary)
			if cur >= prev {
				t.Errorf("%v text tier %d contrast %v not below %v", theme, i, cur, prev)
			}
		}
	}
}
