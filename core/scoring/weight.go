package scoring

import (
	"math"
	"sync"
)

// weightCache memoizes per-length weight tables. Instances derived with
// WithScoreThreshold share it since sigma and mu are unchanged.
type weightCache struct {
	sigma, mu float64
	tables    sync.Map // int -> []float64
}

func newWeightCache(sigma, mu float64) *weightCache {
	return &weightCache{sigma: sigma, mu: mu}
}

// table returns weights for positions [0, length). Callers must not modify it.
func (c *weightCache) table(length int) []float64 {
	if v, ok := c.tables.Load(length); ok {
		return v.([]float64)
	}
	w := make([]float64, length)
	for i := range w {
		w[i] = c.weight(i, length)
	}
	v, _ := c.tables.LoadOrStore(length, w)
	return v.([]float64)
}

// weight evaluates the curve directly; length must be > 0.
// Even lengths average two samples half a position either side so the curve
// stays symmetric about the midpoint.
func (c *weightCache) weight(pos, length int) float64 {
	center := float64(length) / 2
	if length%2 == 0 {
		x1 := (float64(pos)-0.5)/center - 1
		x2 := (float64(pos)+0.5)/center - 1
		return 0.5 * (c.gauss(x1) + c.gauss(x2))
	}
	return c.gauss(float64(pos)/center - 1)
}

func (c *weightCache) gauss(x float64) float64 {
	d := x - c.mu
	return math.Exp(-d * d / (2 * c.sigma * c.sigma))
}
