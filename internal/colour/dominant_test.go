package colour

import (
	"errors"
	"testing"
)

type block struct {
	c RGB
	n int
}

// blockGrid builds a grid from colour/pixel-count pairs laid out row by row.
func blockGrid(width int, blocks ...block) *Grid {
	total := 0
	for _, b := range blocks {
		total += b.n
	}
	height := (total + width - 1) / width
	g := NewSolidGrid(width, height, RGB{R: 128, G: 128, B: 128})
	i := 0
	for _, b := range blocks {
		for range b.n {
			g.Set(i%width, i/width, b.c)
			i++
		}
	}
	return g
}

func TestDominantExtractorSolidRed(t *testing.T) {
	e := NewDominantExtractor(DefaultExtractOptions())
	got, err := e.Extract(NewSolidGrid(10, 10, RGB{R: 255}), 1)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Extract() returned %d colours, want 1", len(got))
	}

	want := RGB{R: 248}
	if got[0] != want {
		t.Errorf("accent[0] = %v, want %v", got[0], want)
	}

	h, s, l := RGBToHSL(got[0])
	if h != 0 || s != 1 || l <= 0.10 || l >= 0.90 {
		t.Errorf("accent HSL = (%v, %v, %v), want hue 0, saturation 1 within lightness filter", h, s, l)
	}
	if theme := DetermineTheme(got); theme != ThemeDark {
		t.Errorf("DetermineTheme() = %v, want dark", theme)
	}
}

func TestDominantExtractorSingleSaturatedColour(t *testing.T) {
	g := blockGrid(20,
		block{RGB{R: 40, G: 90, B: 200}, 30},
		block{RGB{R: 128, G: 128, B: 128}, 300},
		block{RGB{R: 60, G: 60, B: 60}, 70},
	)

	got, err := NewDominantExtractor(DefaultExtractOptions()).Extract(g, 5)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Extract() = %v, want exactly one accent", got)
	}
	if want := quantise(RGB{R: 40, G: 90, B: 200}, 8); got[0] != want {
		t.Errorf("accent[0] = %v, want %v", got[0], want)
	}
}

func TestDominantExtractorDiversity(t *testing.T) {
	red := RGB{R: 255}
	orange := RGB{R: 255, G: 76}
	green := RGB{G: 255}
	blue := RGB{B: 255}

	g := blockGrid(25,
		block{red, 400},    // score 20
		block{orange, 225}, // score 15, too close in hue to red
		block{green, 100},  // score 10
		block{blue, 25},    // score 5
	)

	tests := []struct {
		name  string
		count int
		want  []RGB
	}{
		{
			name:  "diverse picks skip orange",
			count: 3,
			want:  []RGB{{R: 248}, {G: 248}, {B: 248}},
		},
		{
			name:  "top up ignores hue",
			count: 4,
			want:  []RGB{{R: 248}, {G: 248}, {B: 248}, {R: 248, G: 72}},
		},
		{
			name:  "more requested than candidates",
			count: 10,
			want:  []RGB{{R: 248}, {G: 248}, {B: 248}, {R: 248, G: 72}},
		},
		{
			name:  "primary only",
			count: 1,
			want:  []RGB{{R: 248}},
		},
	}

	e := NewDominantExtractor(DefaultExtractOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract(g, tt.count)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Extract() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("accent[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSelectDiverseHueSpacing(t *testing.T) {
	var candidates []Candidate
	for i := range 40 {
		h := float64(i) / 40
		candidates = append(candidates, Candidate{
			Colour: HSLToRGB(h, 0.8, 0.5),
			Hue:    h,
			Score:  float64(40 - i),
		})
	}

	selected := SelectDiverse(candidates, 5, DefaultHueDiversity)
	if len(selected) != 5 {
		t.Fatalf("SelectDiverse() returned %d, want 5", len(selected))
	}
	for i := range selected {
		for j := i + 1; j < len(selected); j++ {
			if d := HueDistance(selected[i].Hue, selected[j].Hue); d < DefaultHueDiversity {
				t.Errorf("hues %v and %v only %v apart", selected[i].Hue, selected[j].Hue, d)
			}
		}
	}
	if selected[0].Hue != 0 {
		t.Errorf("primary hue = %v, want highest scoring candidate", selected[0].Hue)
	}
}

func TestDominantExtractorNoQualifyingPixels(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
	}{
		{name: "white", c: RGB{R: 255, G: 255, B: 255}},
		{name: "black", c: RGB{}},
		{name: "grey", c: RGB{R: 120, G: 120, B: 120}},
		{name: "barely saturated", c: RGB{R: 130, G: 120, B: 120}},
	}

	e := NewDominantExtractor(DefaultExtractOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract(NewSolidGrid(16, 16, tt.c), 5)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("Extract() = %v, want none", got)
			}
		})
	}
}

func TestDominantExtractorInvalidCount(t *testing.T) {
	e := NewDominantExtractor(DefaultExtractOptions())
	for _, count := range []int{0, -1, MaxColourCount + 1} {
		if _, err := e.Extract(NewSolidGrid(2, 2, RGB{R: 255}), count); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("Extract(count=%d) error = %v, want ErrInvalidCount", count, err)
		}
	}
}

func TestHistogramParallelMatchesSerial(t *testing.T) {
	g := &Grid{Width: 37, Height: 211, Pix: make([]RGB, 37*211)}
	for i := range g.Pix {
		g.Pix[i] = RGB{R: uint8(i * 7), G: uint8(i * 13), B: uint8(i * 29)}
	}

	serial := NewDominantExtractor(ExtractOptions{Workers: 1}).Histogram(g)
	parallel := NewDominantExtractor(ExtractOptions{Workers: 6}).Histogram(g)

	if len(serial) != len(parallel) {
		t.Fatalf("bucket counts differ: %d vs %d", len(serial), len(parallel))
	}
	total := 0
	for c, n := range serial {
		if parallel[c] != n {
			t.Errorf("bucket %v: serial %d, parallel %d", c, n, parallel[c])
		}
		total += n
	}
	if total != 37*211 {
		t.Errorf("histogram total = %d, want %d", total, 37*211)
	}
}

func TestQuantise(t *testing.T) {
	tests := []struct {
		in, want RGB
	}{
		{RGB{R: 255, G: 7, B: 8}, RGB{R: 248, G: 0, B: 8}},
		{RGB{R: 15, G: 16, B: 17}, RGB{R: 8, G: 16, B: 16}},
	}
	for _, tt := range tests {
		if got := quantise(tt.in, 8); got != tt.want {
			t.Errorf("quantise(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDetermineTheme(t *testing.T) {
	tests := []struct {
		name    string
		accents []RGB
		want    ThemeType
	}{
		{name: "white", accents: []RGB{{R: 255, G: 255, B: 255}}, want: ThemeLight},
		{name: "black", accents: []RGB{{}}, want: ThemeDark},
		{name: "exactly half is dark", accents: []RGB{{R: 255}}, want: ThemeDark},
		{name: "pastels", accents: []RGB{{R: 250, G: 200, B: 200}, {R: 200, G: 250, B: 200}}, want: ThemeLight},
		{name: "empty", accents: nil, want: ThemeDark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineTheme(tt.accents); got != tt.want {
				t.Errorf("DetermineTheme() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetermineImageTheme(t *testing.T) {
	if got := DetermineImageTheme(NewSolidGrid(8, 8, RGB{R: 255, G: 255, B: 255})); got != ThemeLight {
		t.Errorf("white image = %v, want light", got)
	}
	if got := DetermineImageTheme(NewSolidGrid(8, 8, RGB{})); got != ThemeDark {
		t.Errorf("black image = %v, want dark", got)
	}
}

func TestPadAccents(t *testing.T) {
	seed := RGB{R: 1, G: 2, B: 3}
	a, b := RGB{R: 10}, RGB{G: 20}

	tests := []struct {
		name string
		in   []RGB
		want []RGB
	}{
		{name: "empty uses seed", in: nil, want: []RGB{seed, seed, seed, seed}},
		{name: "repeats last", in: []RGB{a, b}, want: []RGB{a, b, b, b}},
		{name: "long enough", in: []RGB{a, b, a, b, a}, want: []RGB{a, b, a, b, a}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadAccents(tt.in, 4, seed)
			if len(got) != len(tt.want) {
				t.Fatalf("PadAccents() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}

	in := []RGB{a}
	_ = PadAccents(in, 4, seed)
	if len(in) != 1 {
		t.Error("PadAccents modified its input")
	}
}
