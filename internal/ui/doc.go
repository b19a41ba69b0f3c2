// Package ui holds the palette shared by the terminal presenters and the
// interactive explorer. Colors are assigned to what is being shown (terms,
// generator names, timings, counts) rather than to hues, so both front ends
// stay consistent when the palette changes or colors are disabled.
package ui
