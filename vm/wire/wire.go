package wire

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chazu/rtcore/vm"
	"github.com/fxamacker/cbor/v2"
)

// ErrUnsupported is returned for objects that have no snapshot form, such as
// threads.
var ErrUnsupported = errors.New("wire: object cannot be encoded")

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal captures obj and serializes the snapshot to CBOR bytes.
func Marshal(obj vm.Object) ([]byte, error) {
	snap, err := Capture(obj)
	if err != nil {
		return nil, err
	}
	return MarshalSnapshot(snap)
}

// Unmarshal deserializes CBOR bytes and restores the object graph.
func Unmarshal(data []byte) (vm.Object, error) {
	snap, err := UnmarshalSnapshot(data)
	if err != nil {
		return nil, err
	}
	return Restore(snap)
}

// MarshalSnapshot serializes a Snapshot to CBOR bytes.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// UnmarshalSnapshot deserializes a Snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("wire: unmarshal snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("wire: unsupported snapshot version %d", s.Version)
	}
	return &s, nil
}

// ---------------------------------------------------------------------------
// Capture
// ---------------------------------------------------------------------------

type encoder struct {
	snap  *Snapshot
	index map[vm.Object]int
}

// Capture flattens the graph reachable from obj into a Snapshot.
func Capture(obj vm.Object) (*Snapshot, error) {
	e := &encoder{
		snap:  &Snapshot{Version: SnapshotVersion},
		index: make(map[vm.Object]int),
	}
	root, err := e.add(obj)
	if err != nil {
		return nil, err
	}
	e.snap.Root = root
	return e.snap, nil
}

func (e *encoder) add(obj vm.Object) (int, error) {
	if vm.IsAbsent(obj) {
		return Absent, nil
	}
	if !encodable(obj) {
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, vm.FingerprintOf(obj))
	}
	if idx, ok := e.index[obj]; ok {
		return idx, nil
	}
	// Reserve the slot before visiting children so cycles find it.
	idx := len(e.snap.Nodes)
	e.index[obj] = idx
	e.snap.Nodes = append(e.snap.Nodes, Node{})

	n := Node{Fingerprint: vm.FingerprintOf(obj)}
	switch o := obj.(type) {
	case *vm.AnyObject:
		n.Kind = NodeObject
		n.Ancestors = o.Header().VTable().Ancestors()
	case *vm.String:
		n.Kind = NodeString
		n.Bytes = append([]byte(nil), o.GetBuffer()...)
	case *vm.Byte:
		n.Kind, n.Int = NodeByte, int64(o.Value())
	case *vm.Int:
		n.Kind, n.Int = NodeInt, int64(o.Value())
	case *vm.Long:
		n.Kind, n.Int = NodeLong, o.Value()
	case *vm.Float:
		n.Kind, n.Float = NodeFloat, float64(o.Value())
	case *vm.Double:
		n.Kind, n.Float = NodeDouble, o.Value()
	case *vm.Bool:
		n.Kind, n.Bool = NodeBool, o.Value()
	case *vm.Array:
		n.Kind = NodeArray
		n.Refs = make([]int, o.GetLength())
		for i := range n.Refs {
			ref, err := e.add(o.GetElement(i))
			if err != nil {
				return 0, err
			}
			n.Refs[i] = ref
		}
	case *vm.RawArray:
		n.Kind = NodeRaw
		n.ElemSize = o.ElementSize()
		n.Bytes = append([]byte(nil), o.Bytes()...)
	}
	e.snap.Nodes[idx] = n
	return idx, nil
}

func encodable(obj vm.Object) bool {
	switch obj.(type) {
	case *vm.AnyObject, *vm.String, *vm.Byte, *vm.Int, *vm.Long, *vm.Float,
		*vm.Double, *vm.Bool, *vm.Array, *vm.RawArray:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Restore
// ---------------------------------------------------------------------------

type decoder struct {
	objs    []vm.Object
	vtables map[string]*vm.VTable
}

// Restore rebuilds the object graph described by s and returns its root.
// Every object is freshly allocated; instance fingerprints are preserved.
func Restore(s *Snapshot) (vm.Object, error) {
	if s.Root == Absent {
		return nil, nil
	}
	if s.Root < 0 || s.Root >= len(s.Nodes) {
		return nil, fmt.Errorf("wire: root %d out of range", s.Root)
	}
	d := &decoder{
		objs:    make([]vm.Object, len(s.Nodes)),
		vtables: make(map[string]*vm.VTable),
	}
	for i := range s.Nodes {
		obj, err := d.create(&s.Nodes[i])
		if err != nil {
			return nil, fmt.Errorf("wire: node %d: %w", i, err)
		}
		d.objs[i] = obj
	}
	// Array slots are linked once every node exists, so cycles resolve.
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if n.Kind != NodeArray {
			continue
		}
		arr := d.objs[i].(*vm.Array)
		for slot, ref := range n.Refs {
			if ref == Absent {
				continue
			}
			if ref < 0 || ref >= len(d.objs) {
				return nil, fmt.Errorf("wire: node %d slot %d: reference %d out of range", i, slot, ref)
			}
			arr.SetElement(slot, d.objs[ref])
		}
	}
	return d.objs[s.Root], nil
}

func (d *decoder) create(n *Node) (vm.Object, error) {
	switch n.Kind {
	case NodeObject:
		vt, err := d.vtable(n.Ancestors)
		if err != nil {
			return nil, err
		}
		return vm.NewObject(vt), nil
	case NodeString:
		s := vm.NewStringOf(n.Fingerprint)
		s.Load(n.Bytes)
		return s, nil
	case NodeByte:
		return vm.NewByte(int8(n.Int)), nil
	case NodeInt:
		return vm.NewInt(int32(n.Int)), nil
	case NodeLong:
		return vm.NewLong(n.Int), nil
	case NodeFloat:
		return vm.NewFloat(float32(n.Float)), nil
	case NodeDouble:
		return vm.NewDouble(n.Float), nil
	case NodeBool:
		return vm.NewBool(n.Bool), nil
	case NodeArray:
		return vm.NewArrayOf(len(n.Refs), n.Fingerprint), nil
	case NodeRaw:
		if n.ElemSize <= 0 || len(n.Bytes)%n.ElemSize != 0 {
			return nil, fmt.Errorf("raw array of %d bytes does not fit element size %d", len(n.Bytes), n.ElemSize)
		}
		p := vm.NewRawArray(0, n.ElemSize)
		for off := 0; off < len(n.Bytes); off += n.ElemSize {
			copy(p.Grow(), n.Bytes[off:off+n.ElemSize])
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown node kind %d", n.Kind)
	}
}

// vtable rebuilds a vtable chain from its ancestor names, root last.
// Chains already built during this restore are reused.
func (d *decoder) vtable(ancestors []string) (*vm.VTable, error) {
	if len(ancestors) == 0 || ancestors[len(ancestors)-1] != vm.AnyVTable.Name() {
		return nil, fmt.Errorf("vtable chain %v does not end at %s", ancestors, vm.AnyVTable.Name())
	}
	vt := vm.AnyVTable
	for i := len(ancestors) - 2; i >= 0; i-- {
		key := strings.Join(ancestors[i:], "/")
		if cached, ok := d.vtables[key]; ok {
			vt = cached
			continue
		}
		vt = vm.NewVTable(ancestors[i], vt)
		d.vtables[key] = vt
	}
	return vt, nil
}
