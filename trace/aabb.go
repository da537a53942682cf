package trace

import (
	"math"

	"github.com/golang/geo/r3"
)

// MissDistance is the sentinel entry distance for rays that never intersect
// the volume.
const MissDistance = math.MaxFloat64

// EnterVolume computes where a ray first enters the axis-aligned box
// [0, extent) via the slab method. It returns the entry distance along the
// ray (0 when the origin is already inside) and, for origins outside, the
// entry face axes — the axes whose slab boundary the ray crosses last, which
// face an on-entry hit should report. Rays that miss the box or leave it
// entirely behind return MissDistance.
func EnterVolume(origin r3.Vector, ray Ray, extent Extent) (float64, [3]bool) {
	near := [3]float64{}
	tEntry := math.Inf(-1)
	tExit := math.Inf(1)
	for a, bound := range [3]float64{float64(extent.X), float64(extent.Y), float64(extent.Z)} {
		o, inv := axis(origin, a), axis(ray.InvDir, a)
		t1 := (0 - o) * inv
		t2 := (bound - o) * inv
		near[a] = math.Min(t1, t2)
		tEntry = math.Max(tEntry, near[a])
		tExit = math.Min(tExit, math.Max(t1, t2))
	}
	if tEntry > tExit || tExit < 0 {
		return MissDistance, [3]bool{}
	}
	if tEntry <= 0 {
		return 0, [3]bool{}
	}
	var axes [3]bool
	for a := range near {
		axes[a] = near[a] == tEntry
	}
	return tEntry, axes
}

func axis(v r3.Vector, a int) float64 {
	switch a {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
