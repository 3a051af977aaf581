package vm

// Array is the growable reference array. It holds borrowed references: the
// array never owns the objects it points to.
//
// Every slot below length is initialised. Slots created by construction or
// growth start out absent (nil).
type Array struct {
	hdr      Header
	elements []Object
	length   int
	factor   int
	heap     Heap[Object]
}

// NewArray creates an array of length absent slots.
func NewArray(length int) *Array {
	return NewArrayOf(length, "")
}

// NewArrayOf creates an array whose instance fingerprint is fingerprint,
// for arrays of a concrete element type (for example "Array<String>").
func NewArrayOf(length int, fingerprint string) *Array {
	if length < 0 {
		throw(InvalidArgument, "Array length cannot be negative!")
	}
	s := current()
	return &Array{
		hdr:      NewHeaderOf(ArrayVTable, fingerprint),
		elements: s.Refs.Allocate(length),
		length:   length,
		factor:   s.ArrayGrowth,
		heap:     s.Refs,
	}
}

// ArrayOf creates an array holding refs in order.
func ArrayOf(refs ...Object) *Array {
	a := NewArray(len(refs))
	copy(a.elements, refs)
	return a
}

// Header implements Object.
func (a *Array) Header() *Header {
	if a == nil {
		return nil
	}
	return &a.hdr
}

// GetElement returns the reference at index. Faults when the array is absent
// or index is out of range.
func (a *Array) GetElement(index int) Object {
	a.checkIndex(index)
	return a.elements[index]
}

// SetElement stores ref at index. Faults when index is out of range.
func (a *Array) SetElement(index int, ref Object) {
	a.checkIndex(index)
	a.elements[index] = ref
}

// GetLength returns the number of slots in use.
func (a *Array) GetLength() int {
	ThrowIfNull(a)
	return a.length
}

// GetCapacity returns the number of slots available before the next grow.
func (a *Array) GetCapacity() int {
	ThrowIfNull(a)
	return len(a.elements)
}

// Push appends ref, growing by the growth factor when full.
func (a *Array) Push(ref Object) {
	ThrowIfNull(a)
	if a.length == len(a.elements) {
		a.elements = grow(a.heap, a.elements, a.length, a.length+a.factor)
	}
	a.length++
	a.SetElement(a.length-1, ref)
}

func (a *Array) checkIndex(index int) {
	ThrowIfNull(a)
	if index < 0 || index >= a.length {
		throw(OutOfRange, "Array index out of range!")
	}
}
