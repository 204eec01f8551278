package prefixtree

import (
	"errors"
	"fmt"
)

// NoPosition is returned by Position for keys that are not records.
const NoPosition int64 = -1

var (
	// ErrInvalidInput is returned for an empty key, a key with a byte outside
	// 'a'..'z', or bad record metadata.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when removing a key that is not a record.
	ErrNotFound = errors.New("not found")
)

// Entry is a record of the tree.
type Entry struct {
	Key      string
	Position int64
	Length   int64
}

type Tree struct {
	// root is a sentinel; its children are the first letters of all keys
	root node
	size int
}

// New returns a tree filled with the given entries. It panics if an entry is
// invalid.
func New(init ...Entry) *Tree {
	t := &Tree{}

	for _, e := range init {
		if err := t.Insert(e.Key, e.Position, e.Length); err != nil {
			panic(err)
		}
	}

	return t
}

// Len returns the number of live inserts.
func (t *Tree) Len() int {
	return t.size
}

func (t *Tree) Empty() bool {
	return t.size == 0
}

// Clear drops all the records.
func (t *Tree) Clear() {
	t.root = node{}
	t.size = 0
}

// Insert adds a record. Inserting an existing key again overwrites its
// position and length and counts the key one more time.
func (t *Tree) Insert(key string, position, length int64) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if length <= 0 {
		return fmt.Errorf("%w: length of %q must be positive, got %d", ErrInvalidInput, key, length)
	}
	if position < 0 {
		return fmt.Errorf("%w: position of %q must not be negative, got %d", ErrInvalidInput, key, position)
	}

	t.root.insert(key, position, length)
	t.size++

	return nil
}

// Remove undoes one insert of the key. Nodes left without records are dropped.
func (t *Tree) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if !t.Contains(key) {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}

	if t.root.remove(key) == nodeRemoved {
		// the last record is gone
		t.root = node{}
	}

	t.size--

	return nil
}

// Contains reports whether the key is a record (not merely a path to one).
func (t *Tree) Contains(key string) bool {
	n := t.lookup(key)

	return n != nil && n.terminal()
}

// PrefixCount returns the number of records extending the prefix, the prefix
// itself included.
func (t *Tree) PrefixCount(prefix string) int {
	if n := t.lookup(prefix); n != nil {
		return n.count
	}

	return 0
}

// Position returns the position of a record or NoPosition.
func (t *Tree) Position(key string) int64 {
	if e, ok := t.Lookup(key); ok {
		return e.Position
	}

	return NoPosition
}

// Length returns the length of a record or 0.
func (t *Tree) Length(key string) int64 {
	e, _ := t.Lookup(key)

	return e.Length
}

// Lookup returns the record of the key.
func (t *Tree) Lookup(key string) (entry Entry, ok bool) {
	n := t.lookup(key)
	if n == nil || !n.terminal() {
		return
	}

	entry = Entry{Key: key, Position: n.position, Length: n.length}
	ok = true

	return
}

// Iter calls a handler for all records with a given prefix in lexicographic
// order. It returns whether all prefixed records were iterated.
// The handler can continue the process by returning true or abort with false.
func (t *Tree) Iter(prefix string, handler func(Entry) bool) bool {
	var n *node

	if prefix == "" {
		n = &t.root
	} else {
		n = t.lookup(prefix)
	}

	if n == nil {
		return true
	}

	buf := make([]byte, len(prefix), len(prefix)+16)
	copy(buf, prefix)

	return n.walk(buf, handler)
}

// Keys returns all record keys in lexicographic order.
func (t *Tree) Keys() []string {
	keys := make([]string, 0, t.size)

	t.Iter("", func(e Entry) bool {
		keys = append(keys, e.Key)
		return true
	})

	return keys
}

// Entries returns all records in lexicographic order.
func (t *Tree) Entries() []Entry {
	entries := make([]Entry, 0, t.size)

	t.Iter("", func(e Entry) bool {
		entries = append(entries, e)
		return true
	})

	return entries
}

func (t *Tree) lookup(key string) *node {
	if key == "" {
		return nil
	}

	return t.root.find(key)
}

func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidInput)
	}

	for i := 0; i < len(key); i++ {
		if ch := key[i]; ch < firstLetter || ch > lastLetter {
			return fmt.Errorf("%w: byte %q at %d of %q is not a lowercase letter", ErrInvalidInput, ch, i, key)
		}
	}

	return nil
}
