package vm

// VTable identifies a type and links it to its parent in a single-inheritance
// chain. VTables are immutable once created and shared by every instance of
// the type.
//
// The chain obtained by following Parent always ends at AnyVTable.
type VTable struct {
	parent      *VTable
	fingerprint string
}

// Built-in type identities. Every built-in type derives directly from Any.
var (
	AnyVTable    = &VTable{fingerprint: "Any"}
	StringVTable = NewVTable("String", AnyVTable)
	IntVTable    = NewVTable("Int", AnyVTable)
	ByteVTable   = NewVTable("Byte", AnyVTable)
	LongVTable   = NewVTable("Long", AnyVTable)
	FloatVTable  = NewVTable("Float", AnyVTable)
	DoubleVTable = NewVTable("Double", AnyVTable)
	BoolVTable   = NewVTable("Bool", AnyVTable)
	ArrayVTable  = NewVTable("Array", AnyVTable)
	PArrayVTable = NewVTable("pArray", AnyVTable)
	ThreadVTable = NewVTable("Thread", AnyVTable)
)

// NewVTable creates a vtable named name deriving from parent.
// A nil parent is replaced by AnyVTable; only the root has no parent.
func NewVTable(name string, parent *VTable) *VTable {
	if parent == nil {
		parent = AnyVTable
	}
	return &VTable{parent: parent, fingerprint: name}
}

// Parent returns the parent vtable, or nil for the root.
func (vt *VTable) Parent() *VTable {
	return vt.parent
}

// Name returns the vtable's fingerprint.
func (vt *VTable) Name() string {
	return vt.fingerprint
}

// Ancestors returns the fingerprints from vt up to and including the root.
func (vt *VTable) Ancestors() []string {
	var names []string
	for v := vt; v != nil; v = v.parent {
		names = append(names, v.fingerprint)
	}
	return names
}

// Inherits reports whether fingerprint names vt or one of its ancestors.
// Comparison is by value: two distinct vtables with equal names match.
func (vt *VTable) Inherits(fingerprint string) bool {
	for v := vt; v != nil; v = v.parent {
		if v.fingerprint == fingerprint {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Cast validation
// ---------------------------------------------------------------------------

// IsInstance reports whether obj is an instance of the type named by
// fingerprint. The instance's own fingerprint is checked first, then every
// vtable from obj's type up to the root. An absent obj is not an instance of
// anything.
func IsInstance(obj Object, fingerprint string) bool {
	if IsAbsent(obj) {
		return false
	}
	h := obj.Header()
	if h.fingerprint == fingerprint {
		return true
	}
	return h.vtable != nil && h.vtable.Inherits(fingerprint)
}

// ThrowIfInvalidCast faults when a non-absent obj is not an instance of the
// target type. Absent references cast to any reference type.
//
// target may be nil when only the fingerprint is known; it is used for the
// diagnostic message when the fingerprint is empty.
func ThrowIfInvalidCast(obj Object, target *VTable, fingerprint string) {
	if IsAbsent(obj) {
		return
	}
	if fingerprint == "" && target != nil {
		fingerprint = target.Name()
	}
	if IsInstance(obj, fingerprint) {
		return
	}
	throw(InvalidCast, "Invalid cast from '%s' to '%s'!", FingerprintOf(obj), fingerprint)
}
