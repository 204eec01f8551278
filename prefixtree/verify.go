package prefixtree

import (
	"errors"
	"fmt"
)

// ErrCorrupted is returned by Verify when the tree breaks its invariants.
var ErrCorrupted = errors.New("corrupted tree")

// Stats describes the shape of a tree.
type Stats struct {
	Nodes    int
	Records  int // terminal nodes
	Leaves   int
	Branches int // nodes with more than one child
	Edges    int
	MaxDepth int // the longest key
}

// Stats walks the whole tree.
func (t *Tree) Stats() Stats {
	var st Stats

	for _, child := range t.root.children {
		if child != nil {
			child.stats(1, &st)
		}
	}

	return st
}

func (n *node) stats(depth int, st *Stats) {
	fan := n.fanout()

	st.Nodes++
	st.Edges += fan

	switch {
	case fan == 0:
		st.Leaves++
	case fan > 1:
		st.Branches++
	}
	if n.terminal() {
		st.Records++
	}
	if depth > st.MaxDepth {
		st.MaxDepth = depth
	}

	for _, child := range n.children {
		if child != nil {
			child.stats(depth+1, st)
		}
	}
}

// Verify checks every reachable node:
//
//   - the count equals the node's own hits plus the counts of its children;
//   - no node is empty of records;
//   - a node is terminal iff it has hits, and non-terminal nodes have no position;
//   - the child bitmap matches the child slots.
//
// It returns an error wrapping ErrCorrupted for the first violation found.
func (t *Tree) Verify() error {
	r := &t.root

	if r.terminal() || r.hits != 0 {
		return fmt.Errorf("%w: the root is terminal", ErrCorrupted)
	}
	if r.count != t.size {
		return fmt.Errorf("%w: root count %d != size %d", ErrCorrupted, r.count, t.size)
	}
	if err := r.checkChildren(nil); err != nil {
		return err
	}

	buf := make([]byte, 0, 16)

	for idx, child := range r.children {
		if child != nil {
			if err := child.verify(append(buf, byte(idx)+firstLetter)); err != nil {
				return err
			}
		}
	}

	return nil
}

func (n *node) verify(path []byte) error {
	switch {
	case n.count < 1:
		return fmt.Errorf("%w: node %q holds no records (count %d)", ErrCorrupted, path, n.count)
	case n.terminal() != (n.hits > 0):
		return fmt.Errorf("%w: node %q has length %d and %d hits", ErrCorrupted, path, n.length, n.hits)
	case n.length < 0 || n.hits < 0:
		return fmt.Errorf("%w: node %q has negative length or hits", ErrCorrupted, path)
	case !n.terminal() && n.position != 0:
		return fmt.Errorf("%w: non-terminal node %q has position %d", ErrCorrupted, path, n.position)
	}

	if err := n.checkChildren(path); err != nil {
		return err
	}

	for idx, child := range n.children {
		if child != nil {
			if err := child.verify(append(path, byte(idx)+firstLetter)); err != nil {
				return err
			}
		}
	}

	return nil
}

func (n *node) checkChildren(path []byte) error {
	if n.mask&^maskFull != 0 {
		return fmt.Errorf("%w: node %q has bitmap %032b beyond the alphabet", ErrCorrupted, path, n.mask)
	}

	var (
		sum     = n.hits
		present int
	)

	for idx, child := range n.children {
		bit := n.mask&(1<<idx) != 0

		if bit != (child != nil) {
			return fmt.Errorf("%w: node %q bitmap disagrees with child %q", ErrCorrupted, path, byte(idx)+firstLetter)
		}
		if child != nil {
			sum += child.count
			present++
		}
	}

	if present != n.fanout() {
		return fmt.Errorf("%w: node %q has %d children but fan-out %d", ErrCorrupted, path, present, n.fanout())
	}
	if sum != n.count {
		return fmt.Errorf("%w: node %q count %d != %d", ErrCorrupted, path, n.count, sum)
	}

	return nil
}
