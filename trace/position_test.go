package trace

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNewPositionSplitsFloorAndFraction(t *testing.T) {
	p := NewPosition(r3.Vector{X: 4.25, Y: -0.25, Z: 7})
	test.That(t, p.Cell.X, test.ShouldEqual, 4)
	test.That(t, p.Offset.X, test.ShouldAlmostEqual, 0.25)
	test.That(t, p.Cell.Y, test.ShouldEqual, -1)
	test.That(t, p.Offset.Y, test.ShouldAlmostEqual, 0.75)
	test.That(t, p.Cell.Z, test.ShouldEqual, 7)
	test.That(t, p.Offset.Z, test.ShouldEqual, 0)
}

func TestUpdateKeepsOffsetNormalized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	pos := NewPosition(r3.Vector{X: 100.5, Y: -3.75, Z: 0.125})
	want := pos.Point()
	for i := 0; i < 1000; i++ {
		delta := r3.Vector{
			X: (rng.Float64() - 0.5) * 50,
			Y: (rng.Float64() - 0.5) * 50,
			Z: (rng.Float64() - 0.5) * 50,
		}
		pos.Update(delta, r3.Vector{})
		want = want.Add(delta)

		for _, off := range []float64{pos.Offset.X, pos.Offset.Y, pos.Offset.Z} {
			test.That(t, off, test.ShouldBeGreaterThanOrEqualTo, 0)
			test.That(t, off, test.ShouldBeLessThan, 1)
		}
		got := pos.Point()
		test.That(t, got.X, test.ShouldAlmostEqual, want.X, 1e-8)
		test.That(t, got.Y, test.ShouldAlmostEqual, want.Y, 1e-8)
		test.That(t, got.Z, test.ShouldAlmostEqual, want.Z, 1e-8)
	}
}

func TestUpdateBumpCrossesWall(t *testing.T) {
	// Landing exactly on a cell wall plus the bump must put the cell
	// strictly past the wall in the travel direction.
	pos := NewPosition(r3.Vector{X: 2.5, Y: 0.5, Z: 0.5})
	pos.Update(r3.Vector{X: 0.5}, r3.Vector{X: stepEpsilon, Y: stepEpsilon, Z: stepEpsilon})
	test.That(t, pos.Cell.X, test.ShouldEqual, 3)

	pos = NewPosition(r3.Vector{X: 2.5, Y: 0.5, Z: 0.5})
	pos.Update(r3.Vector{X: -0.5}, r3.Vector{X: -stepEpsilon, Y: -stepEpsilon, Z: -stepEpsilon})
	test.That(t, pos.Cell.X, test.ShouldEqual, 1)
}
