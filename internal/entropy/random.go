// Package entropy provides the seeded random-number service shared by every
// generation pass. Draws are made on named streams so that one pass adding
// or removing draws does not disturb the sequence another pass sees.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"hash/fnv"
	"log/slog"
	mrand "math/rand"
	"sort"
)

// Source is the RNG contract consumed by the generators.
type Source interface {
	// Intn returns a uniform int in [0, n) drawn from the named stream.
	Intn(n int, stream string) int
}

// Streams is a seeded Source with one independent generator per stream
// name. It is not safe for concurrent use.
type Streams struct {
	seed    int64
	streams map[string]*mrand.Rand
	draws   map[string]int
}

// NewStreams creates a stream set. A zero seed is replaced by a
// crypto-random one; Seed reports the value actually used.
func NewStreams(seed int64) *Streams {
	if seed == 0 {
		seed = CryptoSeed()
		slog.Debug("entropy seeded from crypto/rand", "seed", seed)
	}
	return &Streams{
		seed:    seed,
		streams: make(map[string]*mrand.Rand),
		draws:   make(map[string]int),
	}
}

// Seed returns the base seed.
func (s *Streams) Seed() int64 {
	return s.seed
}

// Intn implements Source. n <= 0 returns 0 without consuming a draw.
func (s *Streams) Intn(n int, stream string) int {
	if n <= 0 {
		return 0
	}
	r, ok := s.streams[stream]
	if !ok {
		r = mrand.New(mrand.NewSource(s.seed ^ streamHash(stream)))
		s.streams[stream] = r
	}
	s.draws[stream]++
	return r.Intn(n)
}

// Draws returns a copy of the per-stream draw counters.
func (s *Streams) Draws() map[string]int {
	out := make(map[string]int, len(s.draws))
	for k, v := range s.draws {
		out[k] = v
	}
	return out
}

// StreamNames returns the names of every stream drawn from, sorted.
func (s *Streams) StreamNames() []string {
	names := make([]string, 0, len(s.draws))
	for k := range s.draws {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Shuffle performs a Fisher-Yates shuffle of n elements using draws from
// the named stream.
func Shuffle(src Source, n int, stream string, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i+1, stream)
		swap(i, j)
	}
}

// Chance returns true with probability percent/100.
func Chance(src Source, percent int, stream string) bool {
	return src.Intn(100, stream) < percent
}

// Float returns a value in [0, 1) with the given resolution.
func Float(src Source, resolution int, stream string) float64 {
	return float64(src.Intn(resolution, stream)) / float64(resolution)
}

func streamHash(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64())
}

// CryptoSeed returns a non-zero seed from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen but return a fixed non-zero seed.
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
