package text

import "fmt"

// OpKind distinguishes the two TextEdit operation shapes.
type OpKind uint8

const (
	OpCopy OpKind = iota
	OpInsert
)

// Op is a single TextEdit step: either Copy(Range) from the old text or
// Insert(Bytes) of brand new bytes.
type Op struct {
	Kind  OpKind
	Range Range  // valid when Kind == OpCopy
	Bytes []byte // valid when Kind == OpInsert
}

// Edit is an ordered sequence of Copy/Insert operations over the old text.
// It is valid iff the concatenation of its Copy ranges, in order, covers a
// prefix-to-suffix partition of the old text with no overlap and no gaps
// outside inserts.
type Edit struct {
	Ops []Op
}

// Apply materialises the new text by folding Ops over old.
func (e Edit) Apply(old []byte) []byte {
	out := make([]byte, 0, len(old))
	for _, op := range e.Ops {
		switch op.Kind {
		case OpCopy:
			out = append(out, op.Range.Slice(old)...)
		case OpInsert:
			out = append(out, op.Bytes...)
		}
	}
	return out
}

// Builder accumulates replace() calls, in increasing non-overlapping
// old-range order, and emits the canonical Copy/Insert sequence.
type Builder struct {
	oldLen  Unit
	cursor  Unit
	ops     []Op
	lastEnd Unit
}

// NewBuilder starts a builder over old text of the given length.
func NewBuilder(oldLen Unit) *Builder {
	return &Builder{oldLen: oldLen}
}

// Replace records that [oldStart, oldEnd) in the old text is replaced by
// newBytes. Calls must be made in increasing, non-overlapping oldRange
// order; Replace panics otherwise, since an out-of-order call always
// indicates a caller bug rather than a recoverable edit conflict.
func (b *Builder) Replace(oldStart, oldEnd Unit, newBytes []byte) *Builder {
	if oldStart < b.cursor {
		panic(fmt.Sprintf("text: Builder.Replace out of order: start %d < cursor %d", oldStart, b.cursor))
	}
	if oldEnd > b.oldLen {
		panic(fmt.Sprintf("text: Builder.Replace past end of text: end %d > len %d", oldEnd, b.oldLen))
	}
	if oldStart > b.cursor {
		b.ops = append(b.ops, Op{Kind: OpCopy, Range: Range{Start: b.cursor, End: oldStart}})
	}
	if len(newBytes) > 0 {
		b.ops = append(b.ops, Op{Kind: OpInsert, Bytes: newBytes})
	}
	b.cursor = oldEnd
	return b
}

// Build finalises the edit, copying any untouched suffix of the old text.
func (b *Builder) Build() Edit {
	if b.cursor < b.oldLen {
		b.ops = append(b.ops, Op{Kind: OpCopy, Range: Range{Start: b.cursor, End: b.oldLen}})
		b.cursor = b.oldLen
	}
	return Edit{Ops: b.ops}
}

// Empty is the identity edit for a text of length n: applying it is a no-op.
func Empty(n Unit) Edit {
	if n == 0 {
		return Edit{}
	}
	return Edit{Ops: []Op{{Kind: OpCopy, Range: Range{Start: 0, End: n}}}}
}

// JSONEdit is the wire shape of a single edit operation crossing the host
// boundary: a delete range plus the text inserted in its place.
type JSONEdit struct {
	Delete [2]int `json:"delete"`
	Insert string `json:"insert"`
}

// DecodeJSONEdits turns a host-supplied, ascending, non-overlapping list of
// delete/insert entries into an Edit over old text of length oldLen.
func DecodeJSONEdits(oldLen Unit, edits []JSONEdit) (Edit, error) {
	b := NewBuilder(oldLen)
	for _, e := range edits {
		start, end := Unit(e.Delete[0]), Unit(e.Delete[1])
		if start > end {
			return Edit{}, fmt.Errorf("text: invalid delete range [%d, %d)", start, end)
		}
		b.Replace(start, end, []byte(e.Insert))
	}
	return b.Build(), nil
}

// EncodeJSONEdits renders an Edit back to the wire shape, for hosts that
// build an Edit programmatically and need to serialise it.
func EncodeJSONEdits(e Edit) []JSONEdit {
	var out []JSONEdit
	// Reconstruct delete/insert pairs by walking the old-text cursor: a gap
	// between consecutive Copy ranges (or before the first) is a deletion;
	// an Insert op attaches to the deletion immediately preceding it.
	var cursor Unit
	var pendingInsert string
	havePending := false
	emit := func(deleteStart, deleteEnd Unit, insert string) {
		out = append(out, JSONEdit{Delete: [2]int{int(deleteStart), int(deleteEnd)}, Insert: insert})
	}
	for _, op := range e.Ops {
		switch op.Kind {
		case OpCopy:
			if op.Range.Start > cursor {
				emit(cursor, op.Range.Start, pendingInsert)
				pendingInsert = ""
				havePending = false
			} else if havePending {
				emit(cursor, cursor, pendingInsert)
				pendingInsert = ""
				havePending = false
			}
			cursor = op.Range.End
		case OpInsert:
			pendingInsert += string(op.Bytes)
			havePending = true
		}
	}
	if havePending {
		emit(cursor, cursor, pendingInsert)
	}
	return out
}
