package trace

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestEnterVolumeInsideOrigin(t *testing.T) {
	extent := CubeExtent(3)
	for _, origin := range []r3.Vector{
		{X: 0.5, Y: 0.5, Z: 0.5},
		{X: 7.9, Y: 0.1, Z: 4},
		{X: 3, Y: 3, Z: 3},
	} {
		entry, axes := EnterVolume(origin, NewRay(r3.Vector{X: 1, Y: 2, Z: 3}), extent)
		test.That(t, entry, test.ShouldEqual, 0)
		test.That(t, axes, test.ShouldResemble, [3]bool{})
	}
}

func TestEnterVolumeFromOutside(t *testing.T) {
	extent := CubeExtent(3)

	entry, axes := EnterVolume(r3.Vector{X: -5, Y: 4, Z: 4}, NewRay(r3.Vector{X: 1}), extent)
	test.That(t, entry, test.ShouldEqual, 5)
	test.That(t, axes, test.ShouldResemble, [3]bool{true, false, false})

	entry, axes = EnterVolume(r3.Vector{X: 4, Y: 20, Z: 4}, NewRay(r3.Vector{Y: -1}), extent)
	test.That(t, entry, test.ShouldEqual, 12)
	test.That(t, axes, test.ShouldResemble, [3]bool{false, true, false})
}

func TestEnterVolumeMisses(t *testing.T) {
	extent := CubeExtent(3)

	// Parallel to the volume, offset outside it.
	entry, _ := EnterVolume(r3.Vector{X: -5, Y: 40, Z: 4}, NewRay(r3.Vector{X: 1}), extent)
	test.That(t, entry, test.ShouldEqual, MissDistance)

	// Volume entirely behind the ray.
	entry, _ = EnterVolume(r3.Vector{X: 20, Y: 4, Z: 4}, NewRay(r3.Vector{X: 1}), extent)
	test.That(t, entry, test.ShouldEqual, MissDistance)
}
