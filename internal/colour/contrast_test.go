package colour

import "testing"

func TestEnsureContrast(t *testing.T) {
	darkSurface := RGB{R: 20, G: 15, B: 15}
	nearBlack := RGB{R: 10, G: 10, B: 10}
	nearWhite := RGB{R: 240, G: 240, B: 240}

	tests := []struct {
		name string
		fg   RGB
		bg   RGB
		want RGB
	}{
		{name: "red on red-tinted surface", fg: RGB{R: 248}, bg: darkSurface, want: RGB{R: 255, G: 101, B: 101}},
		{name: "red on near black", fg: RGB{R: 248}, bg: nearBlack, want: RGB{R: 255, G: 50, B: 50}},
		{name: "blue on near black", fg: RGB{B: 248}, bg: nearBlack, want: RGB{R: 101, G: 101, B: 255}},
		{name: "indigo on near black", fg: RGB{R: 40, G: 40, B: 200}, bg: nearBlack, want: RGB{R: 84, G: 84, B: 221}},
		{name: "red on near white", fg: RGB{R: 248}, bg: nearWhite, want: RGB{R: 204}},
		{name: "green on near white", fg: RGB{G: 248}, bg: nearWhite, want: RGB{G: 51}},
		{name: "indigo on near white", fg: RGB{R: 40, G: 40, B: 200}, bg: nearWhite, want: RGB{R: 29, G: 29, B: 148}},
		{name: "grey on near white", fg: RGB{R: 128, G: 128, B: 128}, bg: nearWhite, want: RGB{R: 38, G: 38, B: 38}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnsureContrast(tt.fg, tt.bg, DefaultMinContrast)
			if got != tt.want {
				t.Errorf("EnsureContrast(%v, %v) = %v, want %v", tt.fg, tt.bg, got, tt.want)
			}
			if r := ContrastRatio(got, tt.bg); r < DefaultMinContrast {
				t.Errorf("contrast of result = %.2f, want >= %.1f", r, DefaultMinContrast)
			}
		})
	}
}

func TestEnsureContrastUnchangedWhenPassing(t *testing.T) {
	bg := RGB{R: 20, G: 15, B: 15}
	fg := RGB{R: 255, G: 200, B: 200}
	if ContrastRatio(fg, bg) < DefaultMinContrast {
		t.Fatalf("fixture does not pass contrast")
	}
	if got := EnsureContrast(fg, bg, DefaultMinContrast); got != fg {
		t.Errorf("EnsureContrast() = %v, want unchanged %v", got, fg)
	}
}

func TestEnsureContrastDefaultRatio(t *testing.T) {
	fg, bg := RGB{R: 248}, RGB{R: 20, G: 15, B: 15}
	if got, want := EnsureContrast(fg, bg, 0), EnsureContrast(fg, bg, DefaultMinContrast); got != want {
		t.Errorf("EnsureContrast(minRatio=0) = %v, want %v", got, want)
	}
}

// Every accent must either reach the ratio or land on the fallback lightness.
func TestEnsureContrastReachesRatioOrFallback(t *testing.T) {
	backgrounds := []RGB{
		{R: 20, G: 15, B: 15},
		{R: 17, G: 17, B: 17},
		{R: 245, G: 243, B: 243},
		{R: 128, G: 128, B: 128},
	}
	for _, bg := range backgrounds {
		for hue := 0.0; hue < 1; hue += 0.05 {
			for _, s := range []float64{0.2, 0.6, 1} {
				fg := HSLToRGB(hue, s, 0.5)
				got := EnsureContrast(fg, bg, DefaultMinContrast)
				if ContrastRatio(got, bg) >= DefaultMinContrast {
					continue
				}

				want := lightBackgroundFallback
				if Luminance(bg) < 0.5 {
					want = darkBackgroundFallback
				}
				h, sat, _ := RGBToHSL(fg)
				if got != HSLToRGB(h, sat, want) {
					t.Errorf("EnsureContrast(%v, %v) = %v: below ratio and not the fallback", fg, bg, got)
				}
			}
		}
	}
}

func TestCorrectAccents(t *testing.T) {
	bg := RGB{R: 20, G: 15, B: 15}
	passing := RGB{R: 255, G: 200, B: 200}
	accents := []RGB{{R: 248}, passing}

	got, changes := CorrectAccents(accents, bg, DefaultMinContrast)

	if got[0] != (RGB{R: 255, G: 101, B: 101}) {
		t.Errorf("accent[0] = %v, want corrected", got[0])
	}
	if got[1] != passing {
		t.Errorf("accent[1] = %v, want unchanged", got[1])
	}
	if len(changes) != 1 || changes[0].Index != 0 || changes[0].From != (RGB{R: 248}) {
		t.Errorf("changes = %+v, want a single correction of index 0", changes)
	}
	if accents[0] != (RGB{R: 248}) {
		t.Error("CorrectAccents modified its input")
	}
}
