package dwa

import "math"

// Window is the admissible (linear velocity, yaw rate) rectangle for the next
// control period. It carries no identity; a fresh one is computed per plan.
type Window struct {
	VMin, VMax float64 // m/s
	WMin, WMax float64 // rad/s
}

// ComputeWindow intersects the absolute velocity bounds from the config with
// the bounds reachable from the current velocity under the acceleration limits
// over one control period. The intersection may be empty (lower bound above
// upper); the search then simply yields zero candidates.
func ComputeWindow(s State, cfg *Config) Window {
	return Window{
		VMin: math.Max(cfg.MinSpeed, s.LinVel-cfg.MaxAccel*cfg.DT),
		VMax: math.Min(cfg.MaxSpeed, s.LinVel+cfg.MaxAccel*cfg.DT),
		WMin: math.Max(-cfg.MaxYawRate, s.AngVel-cfg.MaxDeltaYawRate*cfg.DT),
		WMax: math.Min(cfg.MaxYawRate, s.AngVel+cfg.MaxDeltaYawRate*cfg.DT),
	}
}

// sampleAxis discretizes [lo, hi) at the given resolution. The upper bound is
// excluded, matching the half-open sampling semantics of the window search.
func sampleAxis(lo, hi, step float64) []float64 {
	n := int(math.Ceil((hi - lo) / step))
	if n <= 0 {
		return nil
	}
	samples := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, lo+float64(i)*step)
	}
	return samples
}
