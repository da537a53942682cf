package world

import (
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/voxtrace/voxtrace/octree"
	"github.com/voxtrace/voxtrace/trace"
)

func solidObject(position r3.Vector, orientation quat.Number) Object {
	store, root := octree.MakeStore(2, func(x, y, z uint32) bool { return true })
	return Object{
		Position:    position,
		Orientation: orientation,
		Store:       store,
		Root:        root,
		Extent:      trace.CubeExtent(2),
	}
}

func TestCompositorNearestWins(t *testing.T) {
	logger := golog.NewTestLogger(t)
	near := solidObject(r3.Vector{X: 10}, NoRotation())
	far := solidObject(r3.Vector{X: 20}, NoRotation())

	c := NewCompositor([]Object{far, near}, logger)
	hit := c.Query(r3.Vector{Y: 2, Z: 2}, r3.Vector{X: 1})

	test.That(t, hit.Occupant, test.ShouldEqual, 1)
	test.That(t, hit.Object, test.ShouldEqual, 1)
	test.That(t, hit.Distance, test.ShouldEqual, 10)
	test.That(t, hit.Normal.X, test.ShouldAlmostEqual, -1)
	test.That(t, hit.Normal.Y, test.ShouldAlmostEqual, 0)
	test.That(t, hit.Normal.Z, test.ShouldAlmostEqual, 0)
}

func TestCompositorEqualDistanceFirstWins(t *testing.T) {
	logger := golog.NewTestLogger(t)
	a := solidObject(r3.Vector{X: 10}, NoRotation())
	b := solidObject(r3.Vector{X: 10}, NoRotation())

	c := NewCompositor([]Object{a, b}, logger)
	hit := c.Query(r3.Vector{Y: 2, Z: 2}, r3.Vector{X: 1})
	test.That(t, hit.Object, test.ShouldEqual, 0)
}

func TestCompositorRotatedObjectNormal(t *testing.T) {
	logger := golog.NewTestLogger(t)
	// 90 degrees about Z: local +X becomes world +Y, so the cube occupies
	// world x in [6,10], y in [0,4].
	s, co := math.Sin(math.Pi/4), math.Cos(math.Pi/4)
	obj := solidObject(r3.Vector{X: 10}, quat.Number{Real: co, Kmag: s})

	c := NewCompositor([]Object{obj}, logger)
	hit := c.Query(r3.Vector{Y: 2, Z: 2}, r3.Vector{X: 1})

	test.That(t, hit.Occupant, test.ShouldEqual, 1)
	test.That(t, hit.Distance, test.ShouldAlmostEqual, 6, 1e-9)
	// The hit face is the local +Y wall; mapped through the object's
	// rotation it faces world -X, back toward the ray.
	test.That(t, hit.Normal.X, test.ShouldAlmostEqual, -1)
	test.That(t, hit.Normal.Y, test.ShouldAlmostEqual, 0)
	test.That(t, hit.Normal.Z, test.ShouldAlmostEqual, 0)
}

func TestCompositorMiss(t *testing.T) {
	logger := golog.NewTestLogger(t)
	c := NewCompositor([]Object{solidObject(r3.Vector{X: 10}, NoRotation())}, logger)

	hit := c.Query(r3.Vector{Y: 40, Z: 2}, r3.Vector{X: 1})
	test.That(t, hit.Occupant, test.ShouldEqual, 0)
	test.That(t, hit.Object, test.ShouldEqual, -1)
}
