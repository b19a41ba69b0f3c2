// Package format renders Fibonacci sequences and timings as text.
package format
