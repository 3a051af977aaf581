package vm

// String is the growable character buffer.
//
// buffer holds capacity usable bytes. After Load it carries one extra byte,
// a trailing zero, which is not counted in capacity. length never exceeds
// capacity.
type String struct {
	hdr      Header
	buffer   []byte
	length   int
	capacity int
	factor   int
	heap     Heap[byte]
}

// NewString creates an empty string with the configured growth factor.
func NewString() *String {
	return NewStringOf("")
}

// NewStringOf creates an empty string whose instance fingerprint is
// fingerprint, for String subtypes produced by generated code.
func NewStringOf(fingerprint string) *String {
	s := current()
	return &String{
		hdr:    NewHeaderOf(StringVTable, fingerprint),
		factor: s.StringGrowth,
		heap:   s.Bytes,
	}
}

// StringFrom creates a string loaded with source.
func StringFrom(source string) *String {
	s := NewString()
	s.Load([]byte(source))
	return s
}

// Header implements Object.
func (s *String) Header() *Header {
	if s == nil {
		return nil
	}
	return &s.hdr
}

// Load replaces the contents with source. The new buffer is zero terminated.
func (s *String) Load(source []byte) {
	ThrowIfNull(s)
	size := len(source)
	output := s.heap.Allocate(size + 1)
	copy(output, source)
	output[size] = 0
	if s.buffer != nil {
		s.heap.Release(s.buffer)
	}
	s.buffer = output
	s.length = size
	s.capacity = size
}

// Resize moves the contents into a buffer of newCapacity bytes.
// Faults when newCapacity is smaller than the current length.
func (s *String) Resize(newCapacity int) {
	ThrowIfNull(s)
	if newCapacity < s.length {
		throw(OutOfRange, "String resize to %d would truncate %d bytes!", newCapacity, s.length)
	}
	old := s.capacity
	s.buffer = grow(s.heap, s.buffer, s.length, newCapacity)
	s.capacity = newCapacity
	heapLog.Debugf("string resized: %d -> %d", old, newCapacity)
}

// AddChar appends c, growing by the growth factor when full.
func (s *String) AddChar(c byte) {
	ThrowIfNull(s)
	if s.length == s.capacity {
		s.Resize(s.capacity + s.factor)
	}
	s.buffer[s.length] = c
	s.length++
}

// GetBuffer returns the content bytes. The slice aliases the string's
// storage and is invalidated by the next mutation.
func (s *String) GetBuffer() []byte {
	ThrowIfNull(s)
	return s.buffer[:s.length:s.length]
}

// GetLength returns the number of content bytes.
func (s *String) GetLength() int {
	ThrowIfNull(s)
	return s.length
}

// GetCapacity returns the number of bytes available before the next grow.
func (s *String) GetCapacity() int {
	ThrowIfNull(s)
	return s.capacity
}

// GrowthFactor returns the number of bytes added per grow.
func (s *String) GrowthFactor() int {
	ThrowIfNull(s)
	return s.factor
}

// String returns the content as a Go string. An absent string is "".
func (s *String) String() string {
	if s == nil {
		return ""
	}
	return string(s.GetBuffer())
}

// ---------------------------------------------------------------------------
// String utilities
// ---------------------------------------------------------------------------

// Concat returns a new string holding a's bytes followed by b's. The result
// reports a's fingerprint.
func Concat(a, b *String) *String {
	ThrowIfNull(a)
	ThrowIfNull(b)
	joined := make([]byte, 0, a.length+b.length)
	joined = append(joined, a.GetBuffer()...)
	joined = append(joined, b.GetBuffer()...)
	out := NewStringOf(a.hdr.fingerprint)
	out.Load(joined)
	return out
}

// Equal reports whether a and b hold identical bytes. Both must be present.
func Equal(a, b *String) bool {
	ThrowIfNull(a)
	ThrowIfNull(b)
	return string(a.GetBuffer()) == string(b.GetBuffer())
}

// Substring returns a new string holding length bytes of s from start.
// Faults when s is absent or the range falls outside it. The result reports s's fingerprint.
func (s *String) Substring(start, length int) *String {
	ThrowIfNull(s)
	switch {
	case start < 0:
		throw(OutOfRange, "Substring start-index cannot be negative!")
	case length < 0:
		throw(OutOfRange, "Substring length cannot be negative!")
	case length > s.length-start:
		throw(OutOfRange, "Substring out of range!")
	}
	out := NewStringOf(s.hdr.fingerprint)
	out.Load(s.buffer[start : start+length])
	return out
}
