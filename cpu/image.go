package cpu

import (
	"encoding/binary"
	"io"
	"iter"
)

// Image is a loadable program image: an origin address followed by the
// words stored contiguously from that origin.
type Image struct {
	Origin uint16
	Words  []uint16
}

// ReadImage decodes a binary program image. The format is big-endian on
// disk regardless of host byte order: one origin word, then payload words
// until end of file. Payload that would run past the top of the address
// space is truncated, and a trailing odd byte is ignored.
func ReadImage(r io.Reader) (img *Image, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}
	if len(data) < 2 {
		err = ErrImageTruncated
		return
	}

	origin := binary.BigEndian.Uint16(data)
	data = data[2:]

	limit := (MemorySize - int(origin)) * 2
	if len(data) > limit {
		data = data[:limit]
	}

	words := make([]uint16, 0, len(data)/2)
	for len(data) >= 2 {
		words = append(words, binary.BigEndian.Uint16(data))
		data = data[2:]
	}

	img = &Image{Origin: origin, Words: words}

	return
}

// Contents iterates the image as (address, word) pairs.
func (img *Image) Contents() iter.Seq2[uint16, uint16] {
	return func(yield func(addr, word uint16) bool) {
		for n, word := range img.Words {
			if !yield(img.Origin+uint16(n), word) {
				return
			}
		}
	}
}

// Load copies the image into memory at its origin.
func (m *Machine) Load(img *Image) {
	for addr, word := range img.Contents() {
		m.Memory.Words[addr] = word
	}
}
