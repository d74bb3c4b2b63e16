// internal/visitors/threshold.go
package visitors

import "episcore/internal/engine"

// Threshold keeps hits that reached the score threshold. With All set every
// hit is kept and Hit.Passed tells the two apart downstream.
type Threshold struct {
	All bool
}

func (v Threshold) Visit(h engine.Hit) (bool, engine.Hit, error) {
	if !v.All && !h.Passed {
		return false, engine.Hit{}, nil
	}
	return true, h, nil
}
