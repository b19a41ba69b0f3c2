// Package metrics measures the memory cost of generated sequences.
package metrics

import (
	"fmt"
	"math/big"
	"math/bits"
	"runtime"
	"unsafe"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by application
	Sys         uint64 // total bytes obtained from OS
	NumGC       uint32 // number of completed GC cycles
	HeapObjects uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}

const (
	wordBytes   = bits.UintSize / 8
	bigIntBytes = uint64(unsafe.Sizeof(big.Int{}))
	ptrBytes    = uint64(unsafe.Sizeof(uintptr(0)))
)

// SequenceFootprint estimates the bytes retained by seq: the slice of
// pointers, each big.Int header and its magnitude words.
func SequenceFootprint(seq []*big.Int) uint64 {
	total := uint64(len(seq)) * (ptrBytes + bigIntBytes)
	for _, v := range seq {
		total += uint64(len(v.Bits())) * wordBytes
	}
	return total
}

// FormatBytes renders n with a binary unit suffix ("1.5 KiB").
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
