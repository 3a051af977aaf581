package vm

import (
	"sync/atomic"

	"github.com/tliron/commonlog"
)

var heapLog = commonlog.GetLogger("rtcore.heap")

// Heap is the allocation service backing container storage.
//
// Reallocate tries to resize s to n elements without moving it. It returns
// false when that is not possible; callers then fall back to
// Allocate/copy/Release. Release hands back storage the caller replaced; it
// must never be called on storage still reachable from a live object.
type Heap[T any] interface {
	Allocate(n int) []T
	Reallocate(s []T, n int) ([]T, bool)
	Release(s []T)
}

// GoHeap allocates from the Go heap. Release is a no-op: replaced storage is
// reclaimed by the collector once unreferenced.
type GoHeap[T any] struct{}

// Allocate returns n zeroed elements.
func (GoHeap[T]) Allocate(n int) []T {
	return make([]T, n)
}

// Reallocate grows s in place when its backing array has room.
func (GoHeap[T]) Reallocate(s []T, n int) ([]T, bool) {
	if n <= cap(s) {
		return s[:n], true
	}
	return nil, false
}

// Release implements Heap.
func (GoHeap[T]) Release([]T) {}

// ---------------------------------------------------------------------------
// Counting heap
// ---------------------------------------------------------------------------

// HeapStats is a snapshot of a CountingHeap's counters.
type HeapStats struct {
	Allocations      int64 // Allocate calls
	Elements         int64 // elements handed out by Allocate
	InPlace          int64 // Reallocate calls that succeeded
	Refused          int64 // Reallocate calls that fell back to copying
	Releases         int64 // Release calls
	ReleasedElements int64 // elements handed back by Release
}

// CountingHeap wraps a heap and counts the calls made through it.
// It is safe for concurrent use when the wrapped heap is.
type CountingHeap[T any] struct {
	inner Heap[T]

	allocations atomic.Int64
	elements    atomic.Int64
	inPlace     atomic.Int64
	refused     atomic.Int64
	releases    atomic.Int64
	released    atomic.Int64
}

// NewCountingHeap wraps inner. A nil inner uses GoHeap.
func NewCountingHeap[T any](inner Heap[T]) *CountingHeap[T] {
	if inner == nil {
		inner = GoHeap[T]{}
	}
	return &CountingHeap[T]{inner: inner}
}

// Allocate implements Heap.
func (h *CountingHeap[T]) Allocate(n int) []T {
	h.allocations.Add(1)
	h.elements.Add(int64(n))
	return h.inner.Allocate(n)
}

// Reallocate implements Heap.
func (h *CountingHeap[T]) Reallocate(s []T, n int) ([]T, bool) {
	out, ok := h.inner.Reallocate(s, n)
	if ok {
		h.inPlace.Add(1)
	} else {
		h.refused.Add(1)
	}
	return out, ok
}

// Release implements Heap.
func (h *CountingHeap[T]) Release(s []T) {
	h.releases.Add(1)
	h.released.Add(int64(len(s)))
	h.inner.Release(s)
}

// Stats returns the current counters.
func (h *CountingHeap[T]) Stats() HeapStats {
	return HeapStats{
		Allocations:      h.allocations.Load(),
		Elements:         h.elements.Load(),
		InPlace:          h.inPlace.Load(),
		Refused:          h.refused.Load(),
		Releases:         h.releases.Load(),
		ReleasedElements: h.released.Load(),
	}
}

// Add returns the sum of two snapshots.
func (s HeapStats) Add(o HeapStats) HeapStats {
	return HeapStats{
		Allocations:      s.Allocations + o.Allocations,
		Elements:         s.Elements + o.Elements,
		InPlace:          s.InPlace + o.InPlace,
		Refused:          s.Refused + o.Refused,
		Releases:         s.Releases + o.Releases,
		ReleasedElements: s.ReleasedElements + o.ReleasedElements,
	}
}

// ---------------------------------------------------------------------------
// Growth
// ---------------------------------------------------------------------------

// grow resizes s to n elements, first in place and otherwise by
// allocate/copy/release. The first keep elements are preserved. Elements
// past keep are zeroed so stale values from earlier use never show through.
func grow[T any](h Heap[T], s []T, keep, n int) []T {
	if out, ok := h.Reallocate(s, n); ok {
		clear(out[keep:])
		heapLog.Debugf("grew in place: %d -> %d", len(s), n)
		return out
	}
	out := h.Allocate(n)
	copy(out, s[:keep])
	clear(out[keep:])
	h.Release(s)
	heapLog.Debugf("grew by copy: %d -> %d", len(s), n)
	return out
}
