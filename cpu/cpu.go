package cpu

import (
	"fmt"
	"log"

	"github.com/ezrec/lc3/io"
)

// Keyboard is the polled key source backing the memory-mapped status and
// data registers and the input trap services.
type Keyboard io.Keyboard

// Console is the character output sink used by the output trap services.
type Console io.Console

const (
	MemorySize   = 1 << 16 // Words in the address space.
	NumRegisters = 8       // General purpose registers r0-r7.

	PC_START = uint16(0x3000) // Program load and start address.
)

// Machine is the complete architectural state of one LC-3 machine: the
// register file, condition flags, memory, and the running flag cleared by
// the HALT trap service. The register file and memory are exclusively
// owned by the machine; execution is single threaded.
type Machine struct {
	Verbose bool // Set to enable verbose execution tracing.

	Register [NumRegisters]uint16 // General purpose registers.
	PC       uint16               // Program counter.
	Cond     Flag                 // Condition flag register.

	Memory  Memory  // Address space with device interception.
	Console Console // Output device for trap services.

	Running bool // Cleared only by the HALT trap service.
	Ticks   int  // Executed instruction counter.
}

// New creates a machine in its power-on state.
func New() (m *Machine) {
	m = &Machine{}
	m.Reset()

	return
}

// Reset restores the power-on state:
// - Clears the registers and memory.
// - Sets the condition register to the ZERO flag.
// - Sets the PC to the program start address.
// - Marks the machine running and zeroes the tick counter.
func (m *Machine) Reset() {
	clear(m.Register[:])
	clear(m.Memory.Words[:])
	m.PC = PC_START
	m.Cond = FL_ZRO
	m.Running = true
	m.Ticks = 0
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	for n, val := range m.Register {
		text += fmt.Sprintf("   r%d: %04X\n", n, val)
	}
	text += fmt.Sprintf("   pc: %04X\n", m.PC)
	text += fmt.Sprintf(" cond: %v\n", m.Cond)

	return
}

// SignExtend treats value as a width-bit two's-complement quantity and
// extends its sign bit through bit 15.
func SignExtend(value uint16, width uint) uint16 {
	if (value>>(width-1))&1 != 0 {
		value |= 0xFFFF << width
	}

	return value
}

// FlagFor returns the condition flag describing value: ZERO for 0,
// NEGATIVE when bit 15 is set, POSITIVE otherwise.
func FlagFor(value uint16) Flag {
	switch {
	case value == 0:
		return FL_ZRO
	case value>>15 != 0:
		return FL_NEG
	default:
		return FL_POS
	}
}

// updateFlags sets the condition register from the current value of
// register r. Called after every instruction that defines a destination
// register, never after stores or pure control transfers.
func (m *Machine) updateFlags(r uint16) {
	m.Cond = FlagFor(m.Register[r])
}

// Tick fetches, decodes and executes a single instruction.
func (m *Machine) Tick() (err error) {
	instr := Instruction(m.Memory.Read(m.PC))
	m.PC++

	if m.Verbose {
		log.Printf("%04x: %v", m.PC-1, instr)
	}

	err = m.Execute(instr)
	if err != nil {
		return
	}

	m.Ticks++

	return
}

// Run executes instructions until the HALT trap clears the running flag.
func (m *Machine) Run() (err error) {
	for m.Running {
		err = m.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single fetched instruction. The PC has already been
// incremented past the instruction word; all PC-relative addressing uses
// that post-fetch value. Dispatch of the reserved RTI and RES opcodes
// returns an ErrInstruction fault.
func (m *Machine) Execute(in Instruction) (err error) {
	switch in.Opcode() {
	case OP_ADD:
		if in.Immediate() {
			m.Register[in.DR()] = m.Register[in.SR1()] + in.Imm5()
		} else {
			m.Register[in.DR()] = m.Register[in.SR1()] + m.Register[in.SR2()]
		}
		m.updateFlags(in.DR())

	case OP_AND:
		if in.Immediate() {
			m.Register[in.DR()] = m.Register[in.SR1()] & in.Imm5()
		} else {
			m.Register[in.DR()] = m.Register[in.SR1()] & m.Register[in.SR2()]
		}
		m.updateFlags(in.DR())

	case OP_NOT:
		m.Register[in.DR()] = ^m.Register[in.SR1()]
		m.updateFlags(in.DR())

	case OP_BR:
		if in.NZP()&m.Cond != 0 {
			m.PC += in.PCOffset9()
		}

	case OP_JMP:
		// Base r7 yields RET; no special case needed.
		m.PC = m.Register[in.SR1()]

	case OP_JSR:
		// r7 is written before the target is read, so JSRR with base r7
		// jumps to the just-saved return address.
		m.Register[7] = m.PC
		if in.Long() {
			m.PC += in.PCOffset11()
		} else {
			m.PC = m.Register[in.SR1()]
		}

	case OP_LD:
		m.Register[in.DR()] = m.Memory.Read(m.PC + in.PCOffset9())
		m.updateFlags(in.DR())

	case OP_LDI:
		m.Register[in.DR()] = m.Memory.Read(m.Memory.Read(m.PC + in.PCOffset9()))
		m.updateFlags(in.DR())

	case OP_LDR:
		m.Register[in.DR()] = m.Memory.Read(m.Register[in.SR1()] + in.Offset6())
		m.updateFlags(in.DR())

	case OP_LEA:
		m.Register[in.DR()] = m.PC + in.PCOffset9()
		m.updateFlags(in.DR())

	case OP_ST:
		m.Memory.Write(m.PC+in.PCOffset9(), m.Register[in.DR()])

	case OP_STI:
		m.Memory.Write(m.Memory.Read(m.PC+in.PCOffset9()), m.Register[in.DR()])

	case OP_STR:
		m.Memory.Write(m.Register[in.SR1()]+in.Offset6(), m.Register[in.DR()])

	case OP_TRAP:
		err = m.trap(in)

	default:
		// OP_RTI and OP_RES are intentionally unimplemented.
		err = ErrInstruction(in)
	}

	return
}
