package colour

import (
	"cmp"
	"math"
	"runtime"
	"slices"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Extraction defaults.
const (
	DefaultBucketSize    = 8
	DefaultMinSaturation = 0.15
	DefaultMinLightness  = 0.10
	DefaultMaxLightness  = 0.90
	DefaultHueDiversity  = 0.10

	// rowsPerWorker is the smallest chunk of rows worth a goroutine.
	rowsPerWorker = 32
)

// ExtractOptions tunes the dominant colour extractor.
type ExtractOptions struct {
	// BucketSize is the width of each per-channel quantisation bucket.
	BucketSize int
	// MinSaturation excludes candidates at or below this saturation.
	MinSaturation float64
	// MinLightness and MaxLightness bound candidate lightness (exclusive).
	MinLightness float64
	MaxLightness float64
	// HueDiversity is the minimum circular hue distance between diverse picks.
	HueDiversity float64
	// Workers caps the histogram goroutines. 0 means GOMAXPROCS.
	Workers int
	// Logger receives debug output. nil disables logging.
	Logger hclog.Logger
}

// DefaultExtractOptions returns the default extraction settings.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		BucketSize:    DefaultBucketSize,
		MinSaturation: DefaultMinSaturation,
		MinLightness:  DefaultMinLightness,
		MaxLightness:  DefaultMaxLightness,
		HueDiversity:  DefaultHueDiversity,
	}
}

func (o ExtractOptions) normalized() ExtractOptions {
	if o.BucketSize < 1 {
		o.BucketSize = DefaultBucketSize
	}
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}

// Candidate is a quantised colour that passed the saturation/lightness filter.
type Candidate struct {
	Colour     RGB
	Count      int
	Hue        float64
	Saturation float64
	Lightness  float64
	Score      float64
}

// DominantExtractor implements Extractor with a quantised histogram.
type DominantExtractor struct {
	opts ExtractOptions
}

// NewDominantExtractor creates a DominantExtractor.
func NewDominantExtractor(opts ExtractOptions) *DominantExtractor {
	return &DominantExtractor{opts: opts.normalized()}
}

// Extract returns up to count accents ordered by selection. An image with no
// qualifying pixels yields an empty slice, not an error.
func (e *DominantExtractor) Extract(src PixelSource, count int) ([]RGB, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}

	hist := e.Histogram(src)
	candidates := e.Candidates(hist)
	selected := SelectDiverse(candidates, count, e.opts.HueDiversity)

	e.opts.Logger.Debug("extracted accents",
		"buckets", len(hist),
		"candidates", len(candidates),
		"selected", len(selected))

	out := make([]RGB, len(selected))
	for i, c := range selected {
		out[i] = c.Colour
	}
	return out, nil
}

// Histogram counts quantised colours. Rows are split into chunks counted
// concurrently; the chunk maps are merged by summation.
func (e *DominantExtractor) Histogram(src PixelSource) map[RGB]int {
	width, height := src.Size()
	if width <= 0 || height <= 0 {
		return map[RGB]int{}
	}

	workers := max(1, min(e.opts.Workers, height/rowsPerWorker))
	locals := make([]map[RGB]int, workers)

	var wg sync.WaitGroup
	for worker := range workers {
		start, end := splitRange(height, workers, worker)
		wg.Add(1)
		go func(index, start, end int) {
			defer wg.Done()
			local := make(map[RGB]int)
			for y := start; y < end; y++ {
				for x := range width {
					local[quantise(src.RGBAt(x, y), e.opts.BucketSize)]++
				}
			}
			locals[index] = local
		}(worker, start, end)
	}
	wg.Wait()

	hist := locals[0]
	for _, local := range locals[1:] {
		for c, n := range local {
			hist[c] += n
		}
	}
	return hist
}

// Candidates filters the histogram and returns scored candidates sorted by
// score descending. Ties are ordered by packed RGB value.
func (e *DominantExtractor) Candidates(hist map[RGB]int) []Candidate {
	candidates := make([]Candidate, 0, len(hist))
	for c, n := range hist {
		h, s, l := RGBToHSL(c)
		if s <= e.opts.MinSaturation || l <= e.opts.MinLightness || l >= e.opts.MaxLightness {
			continue
		}
		candidates = append(candidates, Candidate{
			Colour:     c,
			Count:      n,
			Hue:        h,
			Saturation: s,
			Lightness:  l,
			Score:      s * math.Sqrt(float64(n)),
		})
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(packRGB(a.Colour), packRGB(b.Colour))
	})
	return candidates
}

// SelectDiverse greedily picks up to count candidates whose hues are at least
// minHueDistance apart, then tops up with the best remaining candidates
// regardless of hue. candidates must already be sorted by score.
func SelectDiverse(candidates []Candidate, count int, minHueDistance float64) []Candidate {
	selected := make([]Candidate, 0, count)
	taken := make([]bool, len(candidates))

	for i, cand := range candidates {
		if len(selected) >= count {
			break
		}
		if !hueIsDistinct(selected, cand.Hue, minHueDistance) {
			continue
		}
		selected = append(selected, cand)
		taken[i] = true
	}

	for i, cand := range candidates {
		if len(selected) >= count {
			break
		}
		if taken[i] {
			continue
		}
		selected = append(selected, cand)
	}

	return selected
}

func hueIsDistinct(selected []Candidate, hue, minDistance float64) bool {
	for _, s := range selected {
		if HueDistance(hue, s.Hue) < minDistance {
			return false
		}
	}
	return true
}

// DetermineTheme classifies accents as light or dark from their mean lightness.
// Mean lightness above 0.5 is light; an empty slice is dark.
func DetermineTheme(accents []RGB) ThemeType {
	if len(accents) == 0 {
		return ThemeDark
	}

	total := 0.0
	for _, c := range accents {
		total += Lightness(c)
	}
	if total/float64(len(accents)) > 0.5 {
		return ThemeLight
	}
	return ThemeDark
}

// DetermineImageTheme classifies an image by the mean lightness of all its
// pixels. It is used when no accents could be extracted.
func DetermineImageTheme(src PixelSource) ThemeType {
	width, height := src.Size()
	if width <= 0 || height <= 0 {
		return ThemeDark
	}

	total := 0.0
	for y := range height {
		for x := range width {
			total += Lightness(src.RGBAt(x, y))
		}
	}
	if total/float64(width*height) > 0.5 {
		return ThemeLight
	}
	return ThemeDark
}

// PadAccents returns a copy of accents at least minLen long, repeating the
// last element. An empty input is seeded with seed first.
func PadAccents(accents []RGB, minLen int, seed RGB) []RGB {
	out := make([]RGB, len(accents), max(len(accents), minLen))
	copy(out, accents)
	if len(out) == 0 {
		out = append(out, seed)
	}
	for len(out) < minLen {
		out = append(out, out[len(out)-1])
	}
	return out
}

func quantise(c RGB, bucket int) RGB {
	q := func(v uint8) uint8 { return uint8(int(v) / bucket * bucket) }
	return RGB{R: q(c.R), G: q(c.G), B: q(c.B)}
}

func packRGB(c RGB) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// splitRange returns the [start, end) rows handled by worker.
func splitRange(length, workers, worker int) (int, int) {
	chunk := length / workers
	rem := length % workers
	start := worker*chunk + min(worker, rem)
	end := start + chunk
	if worker < rem {
		end++
	}
	return start, end
}
