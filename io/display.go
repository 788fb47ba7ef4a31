package io

import (
	"bufio"
	"io"
	"os"
)

// Display is a Console buffering writes to an io.Writer. The zero value
// writes to stdout. Output must not be changed after the first write.
type Display struct {
	Output io.Writer // Destination; os.Stdout when nil.

	w *bufio.Writer
}

var _ Console = (*Display)(nil)

func (d *Display) writer() *bufio.Writer {
	if d.w == nil {
		out := d.Output
		if out == nil {
			out = os.Stdout
		}
		d.w = bufio.NewWriter(out)
	}

	return d.w
}

// WriteByte buffers a single character.
func (d *Display) WriteByte(c byte) error {
	return d.writer().WriteByte(c)
}

// Flush writes all buffered characters to the output.
func (d *Display) Flush() error {
	return d.writer().Flush()
}
