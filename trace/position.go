// Package trace implements ray traversal over sparse voxel octrees: a
// fixed-precision ray position, bounding-volume entry, and a sparse DDA
// marcher that advances block by block rather than cell by cell.
package trace

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/voxtrace/voxtrace/octree"
)

// Position is a fixed-precision ray location: an integer cell plus a
// fractional offset with every component in [0,1). Splitting the coordinate
// keeps precision bounded near the ray's current cell even far from the
// grid origin, which a plain float coordinate cannot guarantee.
type Position struct {
	Cell   octree.Cell
	Offset r3.Vector
}

// NewPosition splits a real-valued point into cell and offset parts.
func NewPosition(pt r3.Vector) Position {
	var p Position
	p.Cell.X, p.Offset.X = splitAxis(pt.X)
	p.Cell.Y, p.Offset.Y = splitAxis(pt.Y)
	p.Cell.Z, p.Offset.Z = splitAxis(pt.Z)
	return p
}

// Point reconstructs the real-valued coordinate.
func (p Position) Point() r3.Vector {
	return r3.Vector{
		X: float64(p.Cell.X) + p.Offset.X,
		Y: float64(p.Cell.Y) + p.Offset.Y,
		Z: float64(p.Cell.Z) + p.Offset.Z,
	}
}

// Update advances the position by delta plus a per-axis bump, re-absorbing
// any carry so each offset component lands back in [0,1). The bump is a small
// epsilon signed by the travel direction, applied once per marching step so
// the next sample falls strictly past the crossed block wall instead of
// re-sampling it through float rounding.
func (p *Position) Update(delta, bump r3.Vector) {
	p.Cell.X, p.Offset.X = updateAxis(p.Cell.X, p.Offset.X, delta.X, bump.X)
	p.Cell.Y, p.Offset.Y = updateAxis(p.Cell.Y, p.Offset.Y, delta.Y, bump.Y)
	p.Cell.Z, p.Offset.Z = updateAxis(p.Cell.Z, p.Offset.Z, delta.Z, bump.Z)
}

func splitAxis(v float64) (int32, float64) {
	f := math.Floor(v)
	return int32(f), v - f
}

func updateAxis(cell int32, offset, delta, bump float64) (int32, float64) {
	whole, frac := math.Modf(delta)
	cell += int32(whole)
	off := offset + frac + bump
	carry := math.Floor(off)
	cell += int32(carry)
	off -= carry
	if off >= 1 { // off was a hair below an integer and rounded up
		cell++
		off = 0
	}
	return cell, off
}
