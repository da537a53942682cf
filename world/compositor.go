package world

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"github.com/voxtrace/voxtrace/trace"
)

// Hit is a world-space traversal result. Object is the index of the owning
// object, or -1 when nothing was hit (Occupant 0). Normal is the world-space
// face normal of the crossed boundary; on exact tie crossings it points along
// the normalized diagonal of the tied faces.
type Hit struct {
	trace.HitResult
	Object int
	Normal r3.Vector
}

// Compositor runs the single-object pipeline against every object and keeps
// the globally nearest hit. Like trace.Tracer it is immutable after
// construction and safe for concurrent queries.
type Compositor struct {
	objects []Object
	logger  golog.Logger
}

// NewCompositor returns a compositor over the given objects.
func NewCompositor(objects []Object, logger golog.Logger) *Compositor {
	return &Compositor{objects: objects, logger: logger}
}

// Query casts a world ray against every object and returns the nearest hit.
// Rigid transforms preserve travel distance, so local hit distances compare
// directly. Objects are evaluated independently; order affects only ties on
// exactly equal distance, where the first evaluated object wins.
func (c *Compositor) Query(origin, dir r3.Vector) Hit {
	best := Hit{Object: -1, HitResult: trace.HitResult{Distance: trace.MissDistance}}
	for i := range c.objects {
		obj := &c.objects[i]
		localOrigin := obj.ToLocal(origin)
		localDir := obj.ToLocalDir(dir)

		tracer := trace.NewTracer(obj.Store, c.logger)
		res := tracer.Query(obj.Root, trace.NewPosition(localOrigin), localDir, obj.Extent)
		if res.Occupant == 0 || res.Distance >= best.Distance {
			continue
		}
		best = Hit{
			HitResult: res,
			Object:    i,
			Normal:    obj.ToWorldDir(localNormal(res.Axis, localDir)),
		}
	}
	return best
}

// localNormal converts the crossed axes into a unit face normal opposing the
// local travel direction.
func localNormal(axis [3]bool, dir r3.Vector) r3.Vector {
	var n r3.Vector
	if axis[0] {
		n.X = -sign(dir.X)
	}
	if axis[1] {
		n.Y = -sign(dir.Y)
	}
	if axis[2] {
		n.Z = -sign(dir.Z)
	}
	if n == (r3.Vector{}) {
		return n
	}
	return n.Normalize()
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
