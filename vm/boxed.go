package vm

// Primitive is the set of scalar types that can be boxed.
type Primitive interface {
	~int8 | ~int32 | ~int64 | ~float32 | ~float64 | ~bool
}

// Box is an immutable object wrapping a primitive value.
//
// A nil *Box is a valid receiver: Value returns T's zero value, so "no value"
// and "default value" are interchangeable for boxed primitives.
type Box[T Primitive] struct {
	hdr   Header
	value T
}

// The six boxed primitive types.
type (
	Byte   = Box[int8]
	Int    = Box[int32]
	Long   = Box[int64]
	Float  = Box[float32]
	Double = Box[float64]
	Bool   = Box[bool]
)

// NewByte boxes an 8-bit integer.
func NewByte(v int8) *Byte { return &Byte{hdr: NewHeader(ByteVTable), value: v} }

// NewInt boxes a 32-bit integer.
func NewInt(v int32) *Int { return &Int{hdr: NewHeader(IntVTable), value: v} }

// NewLong boxes a 64-bit integer.
func NewLong(v int64) *Long { return &Long{hdr: NewHeader(LongVTable), value: v} }

// NewFloat boxes a single-precision float.
func NewFloat(v float32) *Float { return &Float{hdr: NewHeader(FloatVTable), value: v} }

// NewDouble boxes a double-precision float.
func NewDouble(v float64) *Double { return &Double{hdr: NewHeader(DoubleVTable), value: v} }

// NewBool boxes a boolean.
func NewBool(v bool) *Bool { return &Bool{hdr: NewHeader(BoolVTable), value: v} }

// Header implements Object.
func (b *Box[T]) Header() *Header {
	if b == nil {
		return nil
	}
	return &b.hdr
}

// Value returns the boxed value, or T's zero value for an absent box.
func (b *Box[T]) Value() T {
	v, _ := b.Get()
	return v
}

// Get returns the boxed value and whether the box was present.
func (b *Box[T]) Get() (T, bool) {
	if b == nil {
		var zero T
		return zero, false
	}
	return b.value, true
}
