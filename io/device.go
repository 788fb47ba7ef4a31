// Package io provides the console device collaborators for the LC-3
// machine: keyboard sources feeding the memory-mapped status/data
// registers and the input trap services, and a buffered display for the
// output trap services.
package io

// Keyboard is a polled key-input source.
type Keyboard interface {
	// Poll reports whether a key is available, waiting at most one
	// bounded polling interval.
	Poll() bool
	// Key reads exactly one key byte.
	Key() (key byte, err error)
}

// Console is a byte-oriented output sink with an explicit flush.
type Console interface {
	// WriteByte writes a single character.
	WriteByte(c byte) error
	// Flush forces buffered output to the underlying writer.
	Flush() error
}
