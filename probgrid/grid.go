// Package probgrid maintains a discretized occupancy-probability map. Reported
// object positions deposit Gaussian-shaped evidence in square rings of
// increasing Chebyshev radius, touching O(radius) boundary cells per ring
// instead of convolving an O(radius^2) dense kernel. After every update the
// whole grid is min-max renormalized onto a fixed output range, and the
// hottest cells can be ranked with TopK.
package probgrid

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Config holds the grid shape, the evidence radius, and the renormalization
// output range. It is immutable after construction.
type Config struct {
	Rows   int `json:"rows"`
	Cols   int `json:"cols"`
	Radius int `json:"radius"` // rings are applied for Chebyshev distances [0, Radius)

	RangeMin float64 `json:"range_min"`
	RangeMax float64 `json:"range_max"`
}

// DefaultConfig returns a 10x10 grid with a 5-cell evidence radius
// renormalized onto [0, 100].
func DefaultConfig() *Config {
	return &Config{Rows: 10, Cols: 10, Radius: 5, RangeMin: 0, RangeMax: 100}
}

// Validate rejects shapes and ranges the update arithmetic cannot support.
func (cfg *Config) Validate(path string) error {
	var err error
	if cfg.Rows <= 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("rows must be positive")))
	}
	if cfg.Cols <= 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("cols must be positive")))
	}
	if cfg.Radius <= 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("radius must be positive")))
	}
	if cfg.RangeMin >= cfg.RangeMax {
		err = multierr.Append(err, goutils.NewConfigValidationError(path,
			errors.Errorf("range_min (%v) must be below range_max (%v)", cfg.RangeMin, cfg.RangeMax)))
	}
	return err
}

// Point addresses a grid cell by row and column.
type Point struct {
	Row int
	Col int
}

// Grid is a fixed-shape array of relative occupancy likelihoods. It is mutated
// only by Update; all other methods are pure queries. Not safe for concurrent
// mutation.
type Grid struct {
	cfg   *Config
	cells []float64 // row-major, len Rows*Cols
}

// New validates the config and returns an all-zero grid.
func New(cfg *Config) (*Grid, error) {
	if cfg == nil {
		return nil, errors.New("grid requires a config")
	}
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	return &Grid{cfg: cfg, cells: make([]float64, cfg.Rows*cfg.Cols)}, nil
}

// Rows returns the grid's row count.
func (g *Grid) Rows() int { return g.cfg.Rows }

// Cols returns the grid's column count.
func (g *Grid) Cols() int { return g.cfg.Cols }

// At returns the current value of the cell at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.cells[row*g.cfg.Cols+col]
}

// ringWeight is the evidence deposited on every cell at Chebyshev distance d
// from an observed object: a zero-mean unit-variance Gaussian density sampled
// at 0.4*d, scaled by 2.
func ringWeight(d int) float64 {
	return 2 * distuv.UnitNormal.Prob(0.4*float64(d))
}

// Update accumulates evidence around an observed object position, one square
// ring per Chebyshev distance below the configured radius, then renormalizes
// the whole grid onto [RangeMin, RangeMax]. Cells outside the grid are
// silently dropped, and the object's own cell receives no direct evidence.
func (g *Grid) Update(p Point) {
	for d := 0; d < g.cfg.Radius; d++ {
		g.addRing(p, d, ringWeight(d))
	}
	g.renormalize()
}

// addRing adds w to every in-bounds cell on the square ring at Chebyshev
// distance d around center: the four edges of the (2d+1)x(2d+1) bounding
// square. The d=0 ring is the center cell itself, which is excluded.
func (g *Grid) addRing(center Point, d int, w float64) {
	if d == 0 {
		return
	}
	for col := center.Col - d; col <= center.Col+d; col++ {
		g.add(center.Row-d, col, w)
		g.add(center.Row+d, col, w)
	}
	for row := center.Row - d + 1; row <= center.Row+d-1; row++ {
		g.add(row, center.Col-d, w)
		g.add(row, center.Col+d, w)
	}
}

func (g *Grid) add(row, col int, w float64) {
	if row < 0 || row >= g.cfg.Rows || col < 0 || col >= g.cfg.Cols {
		return
	}
	g.cells[row*g.cfg.Cols+col] += w
}

// renormalize linearly rescales all cells so the minimum maps to RangeMin and
// the maximum to RangeMax. A flat grid maps entirely to RangeMin.
func (g *Grid) renormalize() {
	lo := floats.Min(g.cells)
	hi := floats.Max(g.cells)
	if hi == lo {
		for i := range g.cells {
			g.cells[i] = g.cfg.RangeMin
		}
		return
	}
	span := hi - lo
	for i := range g.cells {
		g.cells[i] = g.cfg.RangeMin + (g.cells[i]-lo)/span*(g.cfg.RangeMax-g.cfg.RangeMin)
	}
}
