package trace

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"github.com/voxtrace/voxtrace/octree"
)

const (
	// stepLimit caps the marching loop. Exhausting it is reported exactly
	// like walking out of bounds: no hit within the search budget.
	stepLimit = 256

	// stepEpsilon is the per-step bump magnitude pushing the position
	// strictly past the crossed wall (see Position.Update).
	stepEpsilon = 1e-6
)

// HitResult reports the outcome of a single traversal. Occupant 0 means no
// hit was found, whether the ray missed the volume, exited it, or exhausted
// the step budget; the cases are deliberately indistinguishable. Axis flags
// the boundary axes crossed entering the hit block (several on exact ties),
// Steps counts marching iterations as a cost metric, and Distance is the
// travel distance from the true ray origin.
type HitResult struct {
	Occupant uint32
	Axis     [3]bool
	Steps    uint32
	Distance float64
}

// Tracer runs traversal queries against one immutable octree store. It
// replaces the ambient binding state of a GPU pipeline with an explicit
// context value; it holds no mutable state, so a single Tracer may serve any
// number of concurrent queries.
type Tracer struct {
	store  *octree.Store
	logger golog.Logger
}

// NewTracer returns a query context over the given store.
func NewTracer(store *octree.Store, logger golog.Logger) *Tracer {
	return &Tracer{store: store, logger: logger}
}

// Query casts a ray from origin along dir and returns the first occupied
// block within [0, extent), entering the volume first if the origin lies
// outside it. A hit on the very first sample carries the volume entry face
// as its crossed axis.
func (t *Tracer) Query(root octree.Root, origin Position, dir r3.Vector, extent Extent) HitResult {
	ray := NewRay(dir)
	entry, axis := EnterVolume(origin.Point(), ray, extent)
	if entry == MissDistance {
		return HitResult{}
	}
	pos := origin
	if entry > 0 {
		pos.Update(ray.Dir.Mul(entry), ray.Sign.Mul(stepEpsilon))
	}
	return t.march(root, pos, ray, extent, axis, entry)
}

// march is the sparse DDA loop: sample the octree at the current cell, and
// on empty space advance directly to the exit wall of the containing block,
// whatever its size. Traversal cost is therefore proportional to the number
// of distinct blocks crossed, not the number of unit cells.
func (t *Tracer) march(root octree.Root, pos Position, ray Ray, extent Extent, axis [3]bool, traveled float64) HitResult {
	bump := ray.Sign.Mul(stepEpsilon)
	for steps := uint32(0); steps < stepLimit; steps++ {
		if !extent.contains(pos.Cell) {
			return HitResult{Steps: steps, Distance: traveled}
		}
		occupant, height := t.store.Descend(root, pos.Cell)
		if occupant != 0 {
			return HitResult{Occupant: occupant, Axis: axis, Steps: steps, Distance: traveled}
		}
		tNext, crossed := blockExit(pos, ray, height)
		pos.Update(ray.Dir.Mul(tNext), bump)
		axis = crossed
		traveled += tNext
	}
	t.logger.Debugw("traversal exhausted its step budget", "cell", pos.Cell, "distance", traveled)
	return HitResult{Steps: stepLimit, Distance: traveled}
}

// blockExit returns the ray distance to the exit wall of the block of size
// exponent height containing pos, plus the axes achieving that minimum.
// Exact ties flag every tied axis; the position then steps over the block
// corner on all of them at once.
func blockExit(pos Position, ray Ray, height uint32) (float64, [3]bool) {
	size := int32(1) << height
	mask := ^(size - 1)

	dist := [3]float64{
		wallDistance(pos.Cell.X&mask, size, pos.Cell.X, pos.Offset.X, ray.Sign.X, ray.InvDir.X),
		wallDistance(pos.Cell.Y&mask, size, pos.Cell.Y, pos.Offset.Y, ray.Sign.Y, ray.InvDir.Y),
		wallDistance(pos.Cell.Z&mask, size, pos.Cell.Z, pos.Offset.Z, ray.Sign.Z, ray.InvDir.Z),
	}
	tNext := dist[0]
	if dist[1] < tNext {
		tNext = dist[1]
	}
	if dist[2] < tNext {
		tNext = dist[2]
	}
	var crossed [3]bool
	for a := range dist {
		crossed[a] = dist[a] == tNext
	}
	return tNext, crossed
}

func wallDistance(near, size, cell int32, offset, sgn, invDir float64) float64 {
	wall := near
	if sgn > 0 {
		wall += size
	}
	return (float64(wall) - float64(cell) - offset) * invDir
}
