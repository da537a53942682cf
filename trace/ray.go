package trace

import (
	"github.com/golang/geo/r3"

	"github.com/voxtrace/voxtrace/octree"
)

// dirEpsilon replaces exactly-zero direction components so per-axis inverse
// directions stay finite. The resulting wall distances on that axis are large
// enough to never win the step minimum.
const dirEpsilon = 1e-9

// Ray is a traversal-ready ray direction: nudged direction, its per-axis
// inverse, and the derived step sign (+1 or -1 per axis).
type Ray struct {
	Dir    r3.Vector
	InvDir r3.Vector
	Sign   r3.Vector
}

// NewRay derives the inverse direction and step signs, nudging zero
// components to dirEpsilon to avoid division by zero.
func NewRay(dir r3.Vector) Ray {
	dir.X = nudge(dir.X)
	dir.Y = nudge(dir.Y)
	dir.Z = nudge(dir.Z)
	return Ray{
		Dir:    dir,
		InvDir: r3.Vector{X: 1 / dir.X, Y: 1 / dir.Y, Z: 1 / dir.Z},
		Sign:   r3.Vector{X: sign(dir.X), Y: sign(dir.Y), Z: sign(dir.Z)},
	}
}

// Extent is the per-axis cell bound of an addressable volume; valid cells lie
// in [0, extent) on each axis.
type Extent struct {
	X, Y, Z uint32
}

// CubeExtent returns the extent of a cubic volume with the given root height.
func CubeExtent(height uint32) Extent {
	side := uint32(1) << height
	return Extent{X: side, Y: side, Z: side}
}

func (e Extent) contains(c octree.Cell) bool {
	return c.X >= 0 && c.X < int32(e.X) &&
		c.Y >= 0 && c.Y < int32(e.Y) &&
		c.Z >= 0 && c.Z < int32(e.Z)
}

func nudge(v float64) float64 {
	if v == 0 {
		return dirEpsilon
	}
	return v
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
