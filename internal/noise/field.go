// Package noise provides the fractal height-field service used by the
// landmass and island passes. Fields are sampled once at creation,
// normalized to [0, 1] and then read-only.
package noise

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"slices"

	perlin "github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Flags control how a field tiles.
type Flags uint8

const (
	WrapX Flags = 1 << iota // Seamless across the east/west edge
	WrapY                   // Seamless across the north/south edge
)

// Backend selects the noise implementation.
type Backend string

const (
	BackendSimplex Backend = "simplex"
	BackendPerlin  Backend = "perlin"
)

// ParseBackend accepts "simplex" or "perlin".
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendSimplex, "":
		return BackendSimplex, nil
	case BackendPerlin:
		return BackendPerlin, nil
	default:
		return "", fmt.Errorf("unknown noise backend %q", s)
	}
}

// Field is a sampled height field.
type Field struct {
	width  int
	height int
	values []float64
	sorted []float64 // lazily built for HeightFromPercent
}

// FromValues wraps precomputed heights (row-major, len width*height).
func FromValues(width, height int, values []float64) *Field {
	return &Field{width: width, height: height, values: values}
}

// Width returns the field width.
func (f *Field) Width() int { return f.width }

// Height returns the field height.
func (f *Field) Height() int { return f.height }

// At returns the height at (x, y); coordinates wrap.
func (f *Field) At(x, y int) float64 {
	x = ((x % f.width) + f.width) % f.width
	y = ((y % f.height) + f.height) % f.height
	return f.values[y*f.width+x]
}

// HeightFromPercent returns the height below which percent% of the
// field's cells fall. percent is clamped to [0, 100].
func (f *Field) HeightFromPercent(percent float64) float64 {
	if len(f.values) == 0 {
		return 0
	}
	if f.sorted == nil {
		f.sorted = slices.Clone(f.values)
		slices.Sort(f.sorted)
	}
	percent = math.Max(0, math.Min(100, percent))
	i := int(percent / 100 * float64(len(f.sorted)-1))
	return f.sorted[i]
}

// Service creates and tracks height fields by id.
type Service struct {
	backend Backend
	rng     *rand.Rand
	fields  map[string]*Field
}

// NewService creates a noise service. Every Create draws a new sub-seed
// from seed, so repeated creations under the same id differ while the
// whole sequence stays reproducible.
func NewService(seed int64, backend Backend) *Service {
	return &Service{
		backend: backend,
		rng:     rand.New(rand.NewSource(seed)),
		fields:  make(map[string]*Field),
	}
}

// Backend returns the configured backend.
func (s *Service) Backend() Backend {
	return s.backend
}

// Create samples a new width×height field and stores it under id,
// replacing any previous field with that id. Higher grain means finer
// features.
func (s *Service) Create(id string, width, height, grain int, flags Flags) *Field {
	seed := s.rng.Int63()
	var sampler sampler
	switch s.backend {
	case BackendPerlin:
		sampler = newPerlinSampler(seed)
	default:
		sampler = newSimplexSampler(seed)
	}

	f := &Field{
		width:  width,
		height: height,
		values: make([]float64, width*height),
	}
	freq := math.Pow(2, float64(grain)) / float64(max(width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.values[y*width+x] = sampler.sample(float64(x), float64(y), float64(width), float64(height), freq, flags)
		}
	}
	normalize(f.values)

	s.fields[id] = f
	slog.Debug("noise field created", "id", id, "width", width, "height", height, "grain", grain, "backend", s.backend)
	return f
}

// Field returns a previously created field, or nil.
func (s *Service) Field(id string) *Field {
	f, ok := s.fields[id]
	if !ok {
		slog.Debug("noise field missing", "id", id)
		return nil
	}
	return f
}

// normalize rescales values to [0, 1] in place.
func normalize(values []float64) {
	if len(values) == 0 {
		return
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	for i, v := range values {
		if span == 0 {
			values[i] = 0
			continue
		}
		values[i] = (v - lo) / span
	}
}

type sampler interface {
	sample(x, y, w, h, freq float64, flags Flags) float64
}

const (
	octaves     = 4
	persistence = 0.5
)

// simplexSampler maps the grid onto a circle per wrapping axis so opposite
// edges meet: none → Eval2, X → Eval3 (cylinder), X+Y → Eval4 (torus).
type simplexSampler struct {
	noise opensimplex.Noise
}

func newSimplexSampler(seed int64) *simplexSampler {
	return &simplexSampler{noise: opensimplex.NewNormalized(seed)}
}

func (s *simplexSampler) sample(x, y, w, h, freq float64, flags Flags) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += s.eval(x, y, w, h, freq, flags) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		freq *= 2
	}

	return total / maxVal
}

func (s *simplexSampler) eval(x, y, w, h, freq float64, flags Flags) float64 {
	wrapX := flags&WrapX != 0
	wrapY := flags&WrapY != 0

	// Circle radius chosen so the circumference matches the sampled span.
	rx := w * freq / (2 * math.Pi)
	ry := h * freq / (2 * math.Pi)
	ax := 2 * math.Pi * x / w
	ay := 2 * math.Pi * y / h

	switch {
	case wrapX && wrapY:
		return s.noise.Eval4(rx*math.Cos(ax), rx*math.Sin(ax), ry*math.Cos(ay), ry*math.Sin(ay))
	case wrapX:
		return s.noise.Eval3(rx*math.Cos(ax), rx*math.Sin(ax), y*freq)
	case wrapY:
		return s.noise.Eval3(x*freq, ry*math.Cos(ay), ry*math.Sin(ay))
	default:
		return s.noise.Eval2(x*freq, y*freq)
	}
}

// perlinSampler tiles by blending the four periodic images of each point,
// weighted by distance to the opposite edge.
type perlinSampler struct {
	noise *perlin.Perlin
}

func newPerlinSampler(seed int64) *perlinSampler {
	return &perlinSampler{noise: perlin.NewPerlin(2, 2, octaves, seed)}
}

func (p *perlinSampler) sample(x, y, w, h, freq float64, flags Flags) float64 {
	at := func(px, py float64) float64 {
		return p.noise.Noise2D(px*freq, py*freq)
	}

	wrapX := flags&WrapX != 0
	wrapY := flags&WrapY != 0
	switch {
	case wrapX && wrapY:
		fx := (w - x) / w
		fy := (h - y) / h
		return at(x, y)*fx*fy +
			at(x-w, y)*(1-fx)*fy +
			at(x, y-h)*fx*(1-fy) +
			at(x-w, y-h)*(1-fx)*(1-fy)
	case wrapX:
		fx := (w - x) / w
		return at(x, y)*fx + at(x-w, y)*(1-fx)
	case wrapY:
		fy := (h - y) / h
		return at(x, y)*fy + at(x, y-h)*(1-fy)
	default:
		return at(x, y)
	}
}
