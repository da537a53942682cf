// Package world composes traversal queries across multiple independently
// posed voxel objects: a world ray is rotated into each object's local grid
// frame, traced against that object's own octree, and the globally nearest
// hit wins, with its crossed axis mapped back to a world-space surface
// normal.
package world

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/voxtrace/voxtrace/octree"
	"github.com/voxtrace/voxtrace/trace"
)

// Object is one rigidly posed voxel volume. Position is the world location
// of the grid's minimum corner and Orientation the unit quaternion taking
// local grid directions to world directions. Objects share no mutable state;
// several may reference the same store through different roots.
type Object struct {
	Position    r3.Vector
	Orientation quat.Number
	Store       *octree.Store
	Root        octree.Root
	Extent      trace.Extent
}

// NoRotation returns the identity orientation.
func NoRotation() quat.Number {
	return quat.Number{Real: 1}
}

// ToLocal expresses a world point in the object's grid frame.
func (o *Object) ToLocal(pt r3.Vector) r3.Vector {
	return rotate(quat.Conj(o.Orientation), pt.Sub(o.Position))
}

// ToLocalDir expresses a world direction in the object's grid frame.
func (o *Object) ToLocalDir(dir r3.Vector) r3.Vector {
	return rotate(quat.Conj(o.Orientation), dir)
}

// ToWorldDir maps a local direction back into world space.
func (o *Object) ToWorldDir(dir r3.Vector) r3.Vector {
	return rotate(o.Orientation, dir)
}

// rotate applies a unit quaternion to a vector via q v q*.
func rotate(q quat.Number, v r3.Vector) r3.Vector {
	r := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}
