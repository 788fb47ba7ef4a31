package cpu

// Memory-mapped keyboard device registers.
const (
	MR_KBSR = uint16(0xFE00) // Keyboard status register.
	MR_KBDR = uint16(0xFE02) // Keyboard data register.
)

// kbReady is the status-register bit signalling an available key.
const kbReady = uint16(1 << 15)

// Memory is the flat 16-bit address space together with the keyboard
// device intercepted at MR_KBSR on the read path. Addresses are 16 bits
// wide, so indexing can never escape the array.
type Memory struct {
	Words    [MemorySize]uint16
	Keyboard Keyboard // Polled key source; may be nil (no device).
}

// Read returns the word at addr. Reading MR_KBSR polls the keyboard
// first: an available key sets the ready bit of the status word and
// latches the key, zero extended, into MR_KBDR; otherwise the status word
// is cleared. Nothing is cached, so a second read without a new key
// reads back zero.
func (mem *Memory) Read(addr uint16) uint16 {
	if addr == MR_KBSR {
		mem.pollKeyboard()
	}

	return mem.Words[addr]
}

// Write stores value at addr. Writes are never intercepted: a program can
// overwrite the device registers, and the stored value is simply replaced
// by the next status read.
func (mem *Memory) Write(addr, value uint16) {
	mem.Words[addr] = value
}

func (mem *Memory) pollKeyboard() {
	if mem.Keyboard != nil && mem.Keyboard.Poll() {
		key, err := mem.Keyboard.Key()
		if err == nil {
			mem.Words[MR_KBSR] = kbReady
			mem.Words[MR_KBDR] = uint16(key)
			return
		}
	}

	mem.Words[MR_KBSR] = 0
}
