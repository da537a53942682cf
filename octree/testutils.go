package octree

// MakeStore builds a store for tests and demos from a per-cell occupancy
// function sampled at full resolution. Node 0 is the empty leaf and node 1
// the solid leaf; uniform regions collapse onto them, and identical interior
// nodes are shared. The returned root spans [0, 1<<height) on every axis.
func MakeStore(height uint32, solid func(x, y, z uint32) bool) (*Store, Root) {
	b := &storeBuilder{
		nodes:  []Node{emptyLeaf(), solidLeaf()},
		lookup: map[Node]uint32{},
	}
	head := b.build(0, 0, 0, height, solid)
	store, err := NewStore(b.nodes)
	if err != nil {
		// The builder only emits in-range indices.
		panic(err)
	}
	return store, Root{Index: head, Height: height}
}

func emptyLeaf() Node { return Node{} }

func solidLeaf() Node { return Node{1, 1, 1, 1, 1, 1, 1, 1} }

type storeBuilder struct {
	nodes  []Node
	lookup map[Node]uint32
}

func (b *storeBuilder) build(x, y, z, height uint32, solid func(x, y, z uint32) bool) uint32 {
	if height == 0 {
		if solid(x, y, z) {
			return 1
		}
		return 0
	}
	half := uint32(1) << (height - 1)
	var n Node
	for oct := uint32(0); oct < 8; oct++ {
		n[oct] = b.build(x+(oct&1)*half, y+((oct>>1)&1)*half, z+((oct>>2)&1)*half, height-1, solid)
	}
	uniform := n[0] <= 1
	for _, child := range n {
		if child != n[0] {
			uniform = false
			break
		}
	}
	if uniform {
		return n[0]
	}
	if idx, ok := b.lookup[n]; ok {
		return idx
	}
	idx := uint32(len(b.nodes))
	b.nodes = append(b.nodes, n)
	b.lookup[n] = idx
	return idx
}
