// Package vm implements the rtcore managed-object runtime.
//
// This package contains:
//   - VTable type identity with fingerprint-based cast checks
//   - Fault signaling (out of range, invalid cast, null reference)
//   - Null-safe boxed primitives
//   - Growable containers: String, Array and RawArray
//   - A thin Thread wrapper over a pluggable thread service
//
// Container storage comes from a Heap; threads come from a ThreadService.
// Both are installed process-wide with Configure.
//
// No operation is safe against concurrent mutation of the same instance.
// Callers sharing an instance across threads must serialise access.
package vm
