// Package catalog implements the writeup filter engine and the small helpers
// the catalog views build on top of it: facet choices, summary counters and
// the empty-state hint.
//
// Everything here is pure. Functions never mutate their input and keep no
// state between calls, so they are safe to call from any goroutine.
package catalog
