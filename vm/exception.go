package vm

import (
	"fmt"

	"github.com/tliron/commonlog"
)

var faultLog = commonlog.GetLogger("rtcore.fault")

// ---------------------------------------------------------------------------
// Fault signaling
// ---------------------------------------------------------------------------

// FaultKind classifies a fault.
type FaultKind int

const (
	// OutOfRange is raised for bad array indices and substring bounds.
	OutOfRange FaultKind = iota
	// InvalidCast is raised when a non-absent reference fails a cast check.
	InvalidCast
	// NullReference is raised when an absent reference reaches an operation
	// that needs a value.
	NullReference
	// InvalidArgument is raised for construction-time misuse, such as a
	// non-positive element size.
	InvalidArgument
	// Generic is raised by Throw on behalf of generated code.
	Generic
)

func (k FaultKind) String() string {
	switch k {
	case OutOfRange:
		return "OutOfRange"
	case InvalidCast:
		return "InvalidCast"
	case NullReference:
		return "NullReference"
	case InvalidArgument:
		return "InvalidArgument"
	case Generic:
		return "Generic"
	default:
		return fmt.Sprintf("FaultKind(%d)", int(k))
	}
}

// Fault is the value panicked by Throw and its shortcuts. The runtime never
// recovers a Fault: reaching one aborts the program with its message.
type Fault struct {
	Kind    FaultKind
	Message string
}

// Error implements error so an unrecovered Fault prints its message.
func (f *Fault) Error() string {
	return f.Message
}

// Throw aborts normal control flow with message.
func Throw(message string) {
	raise(&Fault{Kind: Generic, Message: message})
}

// ThrowIfNull faults when obj is absent.
func ThrowIfNull(obj Object) {
	if IsAbsent(obj) {
		throw(NullReference, "Null reference!")
	}
}

func throw(kind FaultKind, format string, args ...interface{}) {
	raise(&Fault{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func raise(f *Fault) {
	faultLog.Errorf("%s: %s", f.Kind, f.Message)
	panic(f)
}
