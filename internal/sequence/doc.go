// Package sequence generates prefixes of the Fibonacci sequence.
//
// [Generate] is the core routine: it returns the first n terms as uint64
// values and never fails. The remaining API layers exact-range checking,
// arbitrary-precision terms and named [Generator] implementations on top of
// the same seed-and-extend algorithm so that several implementations can be
// run side by side and cross-checked.
package sequence
