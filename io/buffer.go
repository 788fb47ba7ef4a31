package io

// Buffer is a scripted Keyboard fed from a byte slice. It never blocks:
// Key on an exhausted buffer returns ErrNoKey.
type Buffer struct {
	Data []byte
}

var _ Keyboard = (*Buffer)(nil)

// Poll reports whether any scripted keys remain.
func (b *Buffer) Poll() bool {
	return len(b.Data) > 0
}

// Key pops the next scripted key.
func (b *Buffer) Key() (key byte, err error) {
	if len(b.Data) == 0 {
		err = ErrNoKey
		return
	}

	key = b.Data[0]
	b.Data = b.Data[1:]

	return
}
