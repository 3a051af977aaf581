package vm

// Object is implemented by every runtime instance.
//
// Header returns the instance header, or nil when the receiver is an absent
// (nil) reference. Implementations must be safe to call on a nil receiver so
// that a typed nil stored in an interface is still recognised as absent.
type Object interface {
	Header() *Header
}

// Header is the first field of every runtime instance. It carries the
// instance's vtable and the fingerprint the instance reports for type checks.
//
// The fingerprint defaults to the vtable's name. Generic instantiations (a
// String subtype, an Array of a concrete element type) set it once at
// construction; it never changes afterwards.
type Header struct {
	vtable      *VTable
	fingerprint string
}

// NewHeader creates a header for vt whose fingerprint is the vtable's own.
func NewHeader(vt *VTable) Header {
	return Header{vtable: vt, fingerprint: vt.Name()}
}

// NewHeaderOf creates a header for vt stamped with fingerprint.
// An empty fingerprint falls back to the vtable's name.
func NewHeaderOf(vt *VTable, fingerprint string) Header {
	if fingerprint == "" {
		return NewHeader(vt)
	}
	return Header{vtable: vt, fingerprint: fingerprint}
}

// VTable returns the vtable the instance was constructed with.
func (h *Header) VTable() *VTable {
	return h.vtable
}

// Fingerprint returns the instance fingerprint.
func (h *Header) Fingerprint() string {
	return h.fingerprint
}

// IsAbsent reports whether obj is a nil reference, including a typed nil
// pointer stored in the interface.
func IsAbsent(obj Object) bool {
	return obj == nil || obj.Header() == nil
}

// FingerprintOf returns obj's fingerprint, or "" for an absent reference.
func FingerprintOf(obj Object) string {
	if IsAbsent(obj) {
		return ""
	}
	return obj.Header().Fingerprint()
}

// ---------------------------------------------------------------------------
// Any: the root instance type
// ---------------------------------------------------------------------------

// AnyObject is a plain instance of the root type. Generated classes with no
// fields of their own are represented by it.
type AnyObject struct {
	hdr Header
}

// NewObject creates an instance of vt.
func NewObject(vt *VTable) *AnyObject {
	return &AnyObject{hdr: NewHeader(vt)}
}

// Header implements Object.
func (o *AnyObject) Header() *Header {
	if o == nil {
		return nil
	}
	return &o.hdr
}
