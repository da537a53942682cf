package octree

import (
	"encoding/binary"
	"io"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// The wire layout is a bare little-endian sequence of nodes, 8 uint32 child
// indices each, with no header. Roots are carried out of band as
// (index, height) pairs.

// MarshalBinary serializes the store to its wire layout.
func (s *Store) MarshalBinary() ([]byte, error) {
	buf := make([]byte, len(s.nodes)*NodeBytes)
	for i, n := range s.nodes {
		for c, child := range n {
			binary.LittleEndian.PutUint32(buf[i*NodeBytes+c*4:], child)
		}
	}
	return buf, nil
}

// UnmarshalStore decodes a store from its wire layout, validating node
// alignment and child index ranges.
func UnmarshalStore(data []byte) (*Store, error) {
	if len(data)%NodeBytes != 0 {
		return nil, errors.Errorf("octree data length %d is not a multiple of the %d byte node size", len(data), NodeBytes)
	}
	nodes := make([]Node, len(data)/NodeBytes)
	for i := range nodes {
		for c := 0; c < 8; c++ {
			nodes[i][c] = binary.LittleEndian.Uint32(data[i*NodeBytes+c*4:])
		}
	}
	return NewStore(nodes)
}

// ReadStore decodes a store from r until EOF.
func ReadStore(r io.Reader, logger golog.Logger) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "error reading octree data")
	}
	store, err := UnmarshalStore(data)
	if err != nil {
		return nil, err
	}
	logger.Debugf("read octree store with %d nodes", store.Len())
	return store, nil
}

func validate(nodes []Node) error {
	for i, n := range nodes {
		for c, child := range n {
			if int(child) >= len(nodes) {
				return errors.Errorf("node %d octant %d references child %d beyond store of %d nodes", i, c, child, len(nodes))
			}
		}
	}
	return nil
}
