// Package hash computes stable content hashes of concrete tree nodes, the
// memoisation key spec §9's design notes call for in host-side analyses
// that cache work per sub-tree rather than per file.
package hash

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/opal-lang/langkit/tree"
)

// Sum is a content hash: two nodes with equal Sum values are guaranteed to
// have the same type, byte length and recursive child structure (not
// necessarily the same source bytes — Sum is a structural hash over the
// tree shape, not the text; callers who also need text-identity should mix
// in their own source hash).
type Sum [32]byte

// Node computes a stable content hash of n: its type, byte length and the
// hashes of its children, recursively. Leaf nodes also fold in their byte
// length, so two same-typed leaves of different widths hash differently
// even though a leaf carries no child hashes.
func Node(n tree.Node) Sum {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors on an out-of-range key length, and we
		// never pass one.
		panic(err)
	}
	hashInto(h, n)
	var out Sum
	copy(out[:], h.Sum(nil))
	return out
}

func hashInto(h interface{ Write([]byte) (int, error) }, n tree.Node) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n.TypeIdx()))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(n.Range().Len()))
	h.Write(buf[:])
	if n.IsLeaf() {
		return
	}
	children := n.Children()
	binary.LittleEndian.PutUint64(buf[:], uint64(len(children)))
	h.Write(buf[:])
	for _, c := range children {
		s := Node(c)
		h.Write(s[:])
	}
}
