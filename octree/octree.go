// Package octree implements the flat sparse voxel octree store used by ray
// traversal. Nodes live in a single contiguous arena and reference each other
// by index; a child index equal to the index of the node holding it (a
// "self-loop") marks a terminal block whose occupant id is the node's own
// index, with 0 meaning empty space. The store is immutable once built and
// safe for concurrent reads.
package octree

// A Node holds one child index per spatial octant. Octant selection is
// Z-order: bit 0 picks the X half, bit 1 the Y half, bit 2 the Z half.
type Node [8]uint32

// NodeBytes is the wire size of a single node.
const NodeBytes = 32

// A Root references a subtree as an (index, height) pair. Height is the size
// exponent of the subtree, so the root spans a cube of edge 1<<Height cells.
// Multiple independent roots may share one store.
type Root struct {
	Index  uint32
	Height uint32
}

// A Cell addresses a single unit voxel within a root's coordinate grid.
type Cell struct {
	X, Y, Z int32
}

// Store is a read-only arena of octree nodes.
type Store struct {
	nodes []Node
}

// NewStore wraps a node arena after validating that every child index is
// addressable.
func NewStore(nodes []Node) (*Store, error) {
	if err := validate(nodes); err != nil {
		return nil, err
	}
	return &Store{nodes: nodes}, nil
}

// Len returns the number of nodes in the store.
func (s *Store) Len() int {
	return len(s.nodes)
}

// Node returns the node at the given index.
func (s *Store) Node(i uint32) Node {
	return s.nodes[i]
}

// Descend resolves cell to the terminal block containing it, returning the
// occupant id and the block's size exponent. Starting from root, one child is
// selected per level using bit (h-1) of each cell axis; descent stops at the
// first self-loop, so large homogeneous regions resolve in O(1).
//
// The cell must lie within [0, 1<<root.Height) on every axis. This is not
// validated: out-of-range cells alias onto in-range blocks rather than
// erroring, and callers are expected to clip rays against the volume bounds
// first.
func (s *Store) Descend(root Root, cell Cell) (occupant, height uint32) {
	idx := root.Index
	for h := root.Height; h > 0; h-- {
		oct := (uint32(cell.X)>>(h-1))&1 |
			((uint32(cell.Y)>>(h-1))&1)<<1 |
			((uint32(cell.Z)>>(h-1))&1)<<2
		child := s.nodes[idx][oct]
		if child == idx {
			return idx, h
		}
		idx = child
	}
	return idx, 0
}
