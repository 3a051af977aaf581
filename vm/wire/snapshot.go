// Package wire encodes runtime object graphs as canonical CBOR snapshots so
// they can be written out for inspection and loaded back into fresh objects.
package wire

import (
	"fmt"
	"strings"
)

// NodeKind identifies the kind of object a Node describes.
type NodeKind uint8

const (
	NodeObject NodeKind = 1
	NodeString NodeKind = 2
	NodeByte   NodeKind = 3
	NodeInt    NodeKind = 4
	NodeLong   NodeKind = 5
	NodeFloat  NodeKind = 6
	NodeDouble NodeKind = 7
	NodeBool   NodeKind = 8
	NodeArray  NodeKind = 9
	NodeRaw    NodeKind = 10
)

func (k NodeKind) String() string {
	switch k {
	case NodeObject:
		return "Object"
	case NodeString:
		return "String"
	case NodeByte:
		return "Byte"
	case NodeInt:
		return "Int"
	case NodeLong:
		return "Long"
	case NodeFloat:
		return "Float"
	case NodeDouble:
		return "Double"
	case NodeBool:
		return "Bool"
	case NodeArray:
		return "Array"
	case NodeRaw:
		return "pArray"
	default:
		return "?"
	}
}

// Absent marks a nil reference in Snapshot.Root and Node.Refs.
const Absent = -1

// Snapshot is a flattened object graph. Objects reachable more than once,
// including through cycles, appear once in Nodes and are referenced by index.
type Snapshot struct {
	Version int    `cbor:"1,keyasint"`
	Root    int    `cbor:"2,keyasint"`
	Nodes   []Node `cbor:"3,keyasint"`
}

// Node describes one object. Only the fields relevant to Kind are set.
type Node struct {
	Kind        NodeKind `cbor:"1,keyasint"`
	Fingerprint string   `cbor:"2,keyasint,omitempty"`
	Ancestors   []string `cbor:"3,keyasint,omitempty"` // vtable chain, NodeObject only
	Bytes       []byte   `cbor:"4,keyasint,omitempty"` // String content, RawArray elements
	Int         int64    `cbor:"5,keyasint,omitempty"`
	Float       float64  `cbor:"6,keyasint,omitempty"`
	Bool        bool     `cbor:"7,keyasint,omitempty"`
	Refs        []int    `cbor:"8,keyasint,omitempty"` // Array slots
	ElemSize    int      `cbor:"9,keyasint,omitempty"`
}

// SnapshotVersion is the format version written by Capture.
const SnapshotVersion = 1

// Format renders the snapshot one node per line, for inspection.
func (s *Snapshot) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "snapshot v%d root=%d nodes=%d\n", s.Version, s.Root, len(s.Nodes))
	for i, n := range s.Nodes {
		fmt.Fprintf(&b, "  #%d %s %q", i, n.Kind, n.Fingerprint)
		switch n.Kind {
		case NodeObject:
			fmt.Fprintf(&b, " chain=%s", strings.Join(n.Ancestors, "<"))
		case NodeString:
			fmt.Fprintf(&b, " %q", n.Bytes)
		case NodeByte, NodeInt, NodeLong:
			fmt.Fprintf(&b, " %d", n.Int)
		case NodeFloat, NodeDouble:
			fmt.Fprintf(&b, " %g", n.Float)
		case NodeBool:
			fmt.Fprintf(&b, " %t", n.Bool)
		case NodeArray:
			fmt.Fprintf(&b, " %v", n.Refs)
		case NodeRaw:
			fmt.Fprintf(&b, " elem=%d % x", n.ElemSize, n.Bytes)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
