package zoompath

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/screenglide/screenglide/internal/timeline"
)

// Cache memoizes the generated region array behind a structural hash of its
// inputs. Generation is O(frame count) and would otherwise run on every
// preview frame. The cache is owned by one consumer and is not safe for
// concurrent use; a preview session and an export session each hold their
// own.
type Cache struct {
	key     uint64
	valid   bool
	regions []Region

	hits, misses uint64

	promHits   prometheus.Counter
	promMisses prometheus.Counter
}

// Option configures a Cache.
type Option func(*Cache)

// WithMetrics registers hit/miss counters with the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Cache) {
		c.promHits = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "screenglide",
			Subsystem: "zoompath",
			Name:      "cache_hits_total",
			Help:      "Zoom path cache lookups served without regeneration.",
		})
		c.promMisses = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "screenglide",
			Subsystem: "zoompath",
			Name:      "cache_misses_total",
			Help:      "Zoom path cache lookups that regenerated the region array.",
		})
		reg.MustRegister(c.promHits, c.promMisses)
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Regions returns the per-frame region array for the given inputs, reusing
// the cached array when the structural hash is unchanged. Object identity of
// the section slice is irrelevant; only content matters.
func (c *Cache) Regions(sections []timeline.ZoomSection, videoWidth, videoHeight float64, cfg Config, frameRate, durationMs float64) []Region {
	key := hashInputs(sections, videoWidth, videoHeight, cfg, frameRate, durationMs)
	if c.valid && key == c.key {
		c.hits++
		if c.promHits != nil {
			c.promHits.Inc()
		}
		return c.regions
	}

	c.misses++
	if c.promMisses != nil {
		c.promMisses.Inc()
	}
	c.regions = Generate(sections, videoWidth, videoHeight, cfg, frameRate, durationMs)
	c.key = key
	c.valid = true
	return c.regions
}

// Invalidate drops the cached array, forcing regeneration on the next lookup.
func (c *Cache) Invalidate() {
	c.valid = false
	c.regions = nil
}

// Stats returns the number of cache hits and misses since creation.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}

// hashInputs computes the structural key over everything that affects the
// generated array.
func hashInputs(sections []timeline.ZoomSection, videoWidth, videoHeight float64, cfg Config, frameRate, durationMs float64) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeF := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	writeB := func(v bool) {
		if v {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}

	writeB(cfg.Enabled)
	writeF(cfg.Level)
	writeF(cfg.TransitionMs)
	writeF(videoWidth)
	writeF(videoHeight)
	writeF(frameRate)
	writeF(durationMs)
	for _, s := range sections {
		writeF(s.StartTime)
		writeF(s.EndTime)
		writeF(s.Scale)
		writeF(s.CenterX)
		writeF(s.CenterY)
	}
	return h.Sum64()
}
