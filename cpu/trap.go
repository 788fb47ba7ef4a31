package cpu

import (
	"errors"
	"log"
)

// trap dispatches the system service selected by the low byte of the
// instruction. The current PC is saved into r7 first, mirroring the JSR
// return convention, for every vector including unrecognized ones.
func (m *Machine) trap(in Instruction) (err error) {
	m.Register[7] = m.PC

	vector := in.Vector()

	switch vector {
	case TRAP_GETC:
		err = m.trapGetc()
	case TRAP_OUT:
		err = m.trapOut()
	case TRAP_PUTS:
		err = m.trapPuts()
	case TRAP_IN:
		err = m.trapIn()
	case TRAP_PUTSP:
		err = m.trapPutsp()
	case TRAP_HALT:
		err = m.trapHalt()
	default:
		// Unrecognized vectors fall through with no state change.
		if m.Verbose {
			log.Printf("trap: vector 0x%02x ignored", uint16(vector))
		}
	}

	if err != nil {
		err = errors.Join(ErrTrap(vector), err)
	}

	return
}

// readKey blocks until the keyboard produces a byte. Each poll waits at
// most one bounded interval, so this is the only place execution stalls.
func (m *Machine) readKey() (key byte, err error) {
	kb := m.Memory.Keyboard
	if kb == nil {
		err = ErrNoKeyboard
		return
	}

	for !kb.Poll() {
	}

	return kb.Key()
}

// emit writes characters to the console without flushing.
func (m *Machine) emit(data ...byte) (err error) {
	if m.Console == nil {
		err = ErrNoConsole
		return
	}

	for _, c := range data {
		err = m.Console.WriteByte(c)
		if err != nil {
			return
		}
	}

	return
}

func (m *Machine) flush() (err error) {
	if m.Console == nil {
		err = ErrNoConsole
		return
	}

	return m.Console.Flush()
}

// trapGetc reads one character into r0 without echoing it.
func (m *Machine) trapGetc() (err error) {
	key, err := m.readKey()
	if err != nil {
		return
	}

	m.Register[0] = uint16(key)
	m.updateFlags(0)

	return
}

// trapOut writes the low byte of r0 as one character.
func (m *Machine) trapOut() (err error) {
	err = m.emit(byte(m.Register[0]))
	if err != nil {
		return
	}

	return m.flush()
}

// trapPuts writes one character per word, starting at the address in r0,
// until a zero word.
func (m *Machine) trapPuts() (err error) {
	for addr := m.Register[0]; ; addr++ {
		word := m.Memory.Read(addr)
		if word == 0 {
			break
		}

		err = m.emit(byte(word))
		if err != nil {
			return
		}
	}

	return m.flush()
}

// trapIn prompts for a character, echoes it, and stores it in r0.
func (m *Machine) trapIn() (err error) {
	err = m.emit([]byte("Enter a character: ")...)
	if err != nil {
		return
	}

	key, err := m.readKey()
	if err != nil {
		return
	}

	err = m.emit(key)
	if err != nil {
		return
	}

	err = m.flush()
	if err != nil {
		return
	}

	m.Register[0] = uint16(key)
	m.updateFlags(0)

	return
}

// trapPutsp writes two packed characters per word, starting at the
// address in r0, until a zero word. A zero high byte emits only the low
// byte of its word.
func (m *Machine) trapPutsp() (err error) {
	for addr := m.Register[0]; ; addr++ {
		word := m.Memory.Read(addr)
		if word == 0 {
			break
		}

		err = m.emit(byte(word))
		if err != nil {
			return
		}

		if hi := byte(word >> 8); hi != 0 {
			err = m.emit(hi)
			if err != nil {
				return
			}
		}
	}

	return m.flush()
}

// trapHalt emits the halt notice and clears the running flag.
func (m *Machine) trapHalt() (err error) {
	err = m.emit([]byte("HALT\n")...)
	if err != nil {
		return
	}

	err = m.flush()
	if err != nil {
		return
	}

	m.Running = false

	return
}
