package probgrid

import (
	"testing"

	"go.viam.com/test"
)

func TestConfigValidate(t *testing.T) {
	test.That(t, DefaultConfig().Validate(""), test.ShouldBeNil)

	for _, tc := range []struct {
		name string
		cfg  Config
	}{
		{"zero rows", Config{Rows: 0, Cols: 3, Radius: 1, RangeMax: 1}},
		{"zero cols", Config{Rows: 3, Cols: 0, Radius: 1, RangeMax: 1}},
		{"zero radius", Config{Rows: 3, Cols: 3, Radius: 0, RangeMax: 1}},
		{"inverted range", Config{Rows: 3, Cols: 3, Radius: 1, RangeMin: 2, RangeMax: 1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			test.That(t, cfg.Validate("grid"), test.ShouldNotBeNil)
			_, err := New(&cfg)
			test.That(t, err, test.ShouldNotBeNil)
		})
	}

	_, err := New(nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestUpdateCenterExcluded(t *testing.T) {
	g, err := New(DefaultConfig()) // 10x10, radius 5, range [0, 100]
	test.That(t, err, test.ShouldBeNil)
	g.Update(Point{Row: 5, Col: 5})

	// the object's own cell receives no evidence and stays at the low end
	test.That(t, g.At(5, 5), test.ShouldEqual, 0.0)

	// every Chebyshev-1 neighbor strictly increased; the d=1 ring carries
	// the largest weight, so after renormalization they sit at the high end
	for _, p := range []Point{{4, 4}, {4, 5}, {4, 6}, {5, 4}, {5, 6}, {6, 4}, {6, 5}, {6, 6}} {
		test.That(t, g.At(p.Row, p.Col), test.ShouldEqual, 100.0)
	}
}

func TestUpdateRingGeometry(t *testing.T) {
	cfg := &Config{Rows: 21, Cols: 21, Radius: 3, RangeMin: 0, RangeMax: 1}
	g, err := New(cfg)
	test.That(t, err, test.ShouldBeNil)
	g.Update(Point{Row: 10, Col: 10})

	// cells on the same ring share a value, and the decay weight falls with
	// Chebyshev distance
	ring1 := g.At(9, 10)
	test.That(t, g.At(9, 9), test.ShouldEqual, ring1)
	test.That(t, g.At(10, 11), test.ShouldEqual, ring1)
	test.That(t, ring1, test.ShouldEqual, 1.0)

	ring2 := g.At(8, 10)
	test.That(t, g.At(8, 8), test.ShouldEqual, ring2)
	test.That(t, g.At(12, 12), test.ShouldEqual, ring2)
	test.That(t, ring2, test.ShouldBeGreaterThan, 0)
	test.That(t, ring2, test.ShouldBeLessThan, ring1)

	// rings stop at the configured radius
	test.That(t, g.At(7, 10), test.ShouldEqual, 0.0)
	test.That(t, g.At(0, 0), test.ShouldEqual, 0.0)
}

func TestUpdateOutOfBoundsDropped(t *testing.T) {
	cfg := &Config{Rows: 5, Cols: 5, Radius: 5, RangeMin: 0, RangeMax: 100}
	g, err := New(cfg)
	test.That(t, err, test.ShouldBeNil)

	// most of the rings around a corner fall outside the grid; they are
	// dropped cell by cell without error
	g.Update(Point{Row: 0, Col: 0})
	test.That(t, g.At(0, 0), test.ShouldEqual, 0.0)
	test.That(t, g.At(0, 1), test.ShouldEqual, 100.0)
	test.That(t, g.At(1, 1), test.ShouldEqual, 100.0)
	test.That(t, g.At(4, 4), test.ShouldBeLessThan, g.At(2, 2))
}

func TestUpdateAccumulatesAcrossCalls(t *testing.T) {
	cfg := &Config{Rows: 21, Cols: 21, Radius: 2, RangeMin: 0, RangeMax: 1}
	g, err := New(cfg)
	test.That(t, err, test.ShouldBeNil)

	g.Update(Point{Row: 5, Col: 5})
	g.Update(Point{Row: 15, Col: 15})

	// the first neighborhood was renormalized to the high end before the
	// second observation landed, so it stays the maximum and the second
	// neighborhood carries exactly one raw ring weight
	test.That(t, g.At(5, 6), test.ShouldEqual, 1.0)
	test.That(t, g.At(15, 16), test.ShouldEqual, ringWeight(1))
	test.That(t, g.At(15, 16), test.ShouldBeGreaterThan, 0.0)
	test.That(t, g.At(15, 16), test.ShouldBeLessThan, 1.0)
	test.That(t, g.At(5, 5), test.ShouldEqual, 0.0)
	test.That(t, g.At(10, 10), test.ShouldEqual, 0.0)
}

func TestUpdateFlatGridRenormalizesToLow(t *testing.T) {
	// radius 1 has only the excluded d=0 ring, so no evidence lands and the
	// whole grid maps to the range's low end
	cfg := &Config{Rows: 3, Cols: 3, Radius: 1, RangeMin: 2, RangeMax: 10}
	g, err := New(cfg)
	test.That(t, err, test.ShouldBeNil)
	g.Update(Point{Row: 1, Col: 1})
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			test.That(t, g.At(row, col), test.ShouldEqual, 2.0)
		}
	}
}
