package vm

import "math"

// RawArray is a growable buffer of fixed-size opaque elements, used where
// boxing each element is undesired.
//
// elements holds capacity*elemSize bytes. elemSize is fixed at construction.
type RawArray struct {
	hdr      Header
	elements []byte
	length   int
	capacity int
	factor   int
	elemSize int
	heap     Heap[byte]
}

// NewRawArray creates a raw array of length zeroed elements of elemSize bytes.
// Faults when elemSize is not positive, length is negative, or the buffer
// size would overflow.
func NewRawArray(length, elemSize int) *RawArray {
	if elemSize <= 0 {
		throw(InvalidArgument, "pArray element size must be positive!")
	}
	if length < 0 {
		throw(InvalidArgument, "pArray length cannot be negative!")
	}
	if length > math.MaxInt/elemSize {
		throw(InvalidArgument, "pArray of %d elements of %d bytes is too large!", length, elemSize)
	}
	s := current()
	return &RawArray{
		hdr:      NewHeader(PArrayVTable),
		elements: s.Bytes.Allocate(length * elemSize),
		length:   length,
		capacity: length,
		factor:   s.RawArrayGrowth,
		elemSize: elemSize,
		heap:     s.Bytes,
	}
}

// Header implements Object.
func (p *RawArray) Header() *Header {
	if p == nil {
		return nil
	}
	return &p.hdr
}

// GetLength returns the number of elements in use.
func (p *RawArray) GetLength() int {
	ThrowIfNull(p)
	return p.length
}

// GetCapacity returns the number of elements available before the next grow.
func (p *RawArray) GetCapacity() int {
	ThrowIfNull(p)
	return p.capacity
}

// ElementSize returns the size of one element in bytes.
func (p *RawArray) ElementSize() int {
	ThrowIfNull(p)
	return p.elemSize
}

// Grow reserves one more element and returns its slot for the caller to
// fill. The slot aliases the array's storage; it is invalidated by the next
// Grow that has to reallocate.
func (p *RawArray) Grow() []byte {
	ThrowIfNull(p)
	if p.length == p.capacity {
		newCapacity := p.length + p.factor
		if newCapacity > math.MaxInt/p.elemSize {
			throw(OutOfRange, "pArray cannot grow past %d elements!", p.length)
		}
		p.elements = grow(p.heap, p.elements, p.length*p.elemSize, newCapacity*p.elemSize)
		p.capacity = newCapacity
	}
	p.length++
	return p.slot(p.length - 1)
}

// GetElementPtr returns the slot of the element at index.
// Faults when index is out of range.
func (p *RawArray) GetElementPtr(index int) []byte {
	ThrowIfNull(p)
	if index < 0 || index >= p.length {
		throw(OutOfRange, "Array index out of range!")
	}
	return p.slot(index)
}

// Bytes returns the in-use portion of the backing buffer.
func (p *RawArray) Bytes() []byte {
	ThrowIfNull(p)
	n := p.length * p.elemSize
	return p.elements[:n:n]
}

func (p *RawArray) slot(index int) []byte {
	off := index * p.elemSize
	return p.elements[off : off+p.elemSize : off+p.elemSize]
}
