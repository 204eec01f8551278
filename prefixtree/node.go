package prefixtree

import (
	"math/bits"

	"github.com/hideo55/go-popcount"
)

const (
	alphabetSize = 26
	firstLetter  = 'a'
	lastLetter   = 'z'

	maskFull uint32 = (1 << alphabetSize) - 1
)

// outcome reports to a parent what happened to its child during removal.
type outcome byte

const (
	nodeRetained outcome = iota
	nodeRemoved
)

type node struct {
	children [alphabetSize]*node
	// mask has bit i set iff children[i] is present
	mask uint32

	position int64
	// length is zero unless the path ending here is a record
	length int64
	// hits counts the live inserts ending exactly here
	hits int
	// count is the number of records at or below this node
	count int
}

func (n *node) terminal() bool {
	return n.length != 0
}

func (n *node) fanout() int {
	return int(popcount.Count(uint64(n.mask)))
}

func (n *node) link(idx byte, child *node) {
	n.children[idx] = child
	n.mask |= 1 << idx
}

func (n *node) unlink(idx byte) {
	n.children[idx] = nil
	n.mask &^= 1 << idx
}

func (n *node) clearTerminal() {
	n.position = 0
	n.length = 0
	n.hits = 0
}

// insert walks the key from n creating missing nodes and bumps every count
// along the path. The last node gets the record's position and length.
func (n *node) insert(key string, position, length int64) {
	cur := n

	for i := 0; i < len(key); i++ {
		idx := key[i] - firstLetter
		next := cur.children[idx]

		if next == nil {
			next = &node{}
			cur.link(idx, next)
		}

		cur.count++
		cur = next
	}

	cur.position = position
	cur.length = length
	cur.hits++
	cur.count++
}

// remove undoes one insert of key below n. The caller guarantees that key is
// a record. A child reporting nodeRemoved is dropped by its parent.
func (n *node) remove(key string) outcome {
	var (
		idx   = key[0] - firstLetter
		child = n.children[idx]
	)

	if len(key) > 1 {
		if child.remove(key[1:]) == nodeRemoved {
			n.unlink(idx)

			if n.count == 1 {
				return nodeRemoved
			}
		}

		n.count--

		return nodeRetained
	}

	// child ends the key
	switch {
	case child.count == 1:
		n.unlink(idx)

		if !n.terminal() && n.count == 1 {
			return nodeRemoved
		}

	case child.hits > 1:
		// a duplicate insert - keep the record
		child.hits--
		child.count--

	default:
		// longer records pass through the child
		child.clearTerminal()
		child.count--
	}

	n.count--

	return nodeRetained
}

// find returns the node at the end of the key path or nil.
func (n *node) find(key string) *node {
	cur := n

	for i := 0; i < len(key) && cur != nil; i++ {
		ch := key[i]
		if ch < firstLetter || ch > lastLetter {
			return nil
		}
		cur = cur.children[ch-firstLetter]
	}

	return cur
}

// walk calls the handler for every record at or below n in lexicographic
// order. buf holds the path of n. Returns false if the handler aborted.
func (n *node) walk(buf []byte, handler func(Entry) bool) bool {
	if n.terminal() {
		entry := Entry{
			Key:      string(buf),
			Position: n.position,
			Length:   n.length,
		}
		if !handler(entry) {
			return false
		}
	}

	for mask := n.mask; mask != 0; mask &= mask - 1 {
		idx := bits.TrailingZeros32(mask)

		if !n.children[idx].walk(append(buf, byte(idx)+firstLetter), handler) {
			return false
		}
	}

	return true
}
