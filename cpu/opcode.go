// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Opcode is the 4-bit operation selector in bits [15:12] of an instruction.
type Opcode uint16

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_BR   = Opcode(0)  // br
	OP_ADD  = Opcode(1)  // add
	OP_LD   = Opcode(2)  // ld
	OP_ST   = Opcode(3)  // st
	OP_JSR  = Opcode(4)  // jsr
	OP_AND  = Opcode(5)  // and
	OP_LDR  = Opcode(6)  // ldr
	OP_STR  = Opcode(7)  // str
	OP_RTI  = Opcode(8)  // rti
	OP_NOT  = Opcode(9)  // not
	OP_LDI  = Opcode(10) // ldi
	OP_STI  = Opcode(11) // sti
	OP_JMP  = Opcode(12) // jmp
	OP_RES  = Opcode(13) // res
	OP_LEA  = Opcode(14) // lea
	OP_TRAP = Opcode(15) // trap
)

// Flag is a condition flag bit. The condition register holds exactly one;
// a branch condition mask may combine several.
type Flag uint16

//go:generate go tool stringer -linecomment -type=Flag
const (
	FL_POS = Flag(1 << 0) // pos
	FL_ZRO = Flag(1 << 1) // zro
	FL_NEG = Flag(1 << 2) // neg
)

// TrapVector selects the system service invoked by OP_TRAP.
type TrapVector uint16

//go:generate go tool stringer -linecomment -type=TrapVector
const (
	TRAP_GETC  = TrapVector(0x20) // getc
	TRAP_OUT   = TrapVector(0x21) // out
	TRAP_PUTS  = TrapVector(0x22) // puts
	TRAP_IN    = TrapVector(0x23) // in
	TRAP_PUTSP = TrapVector(0x24) // putsp
	TRAP_HALT  = TrapVector(0x25) // halt
)

// Instruction is a single 16-bit instruction word. The operand accessors
// extract the fixed-width fields; every bit pattern decodes to some value,
// so decode itself cannot fail.
type Instruction uint16

// Opcode returns the operation selector from bits [15:12].
func (in Instruction) Opcode() Opcode {
	return Opcode(in >> 12)
}

// DR returns the register index in bits [11:9]: the destination for
// operate and load instructions, the source for stores.
func (in Instruction) DR() uint16 {
	return uint16(in>>9) & 0x7
}

// SR1 returns the register index in bits [8:6]: the first operand source,
// or the base register for JMP, JSRR, LDR and STR.
func (in Instruction) SR1() uint16 {
	return uint16(in>>6) & 0x7
}

// SR2 returns the second operand register index in bits [2:0].
func (in Instruction) SR2() uint16 {
	return uint16(in) & 0x7
}

// Immediate reports whether bit [5] selects the imm5 operand form.
func (in Instruction) Immediate() bool {
	return in&(1<<5) != 0
}

// Long reports whether bit [11] selects the PC-relative JSR form.
func (in Instruction) Long() bool {
	return in&(1<<11) != 0
}

// Imm5 returns the sign-extended 5-bit immediate in bits [4:0].
func (in Instruction) Imm5() uint16 {
	return SignExtend(uint16(in)&0x1F, 5)
}

// Offset6 returns the sign-extended base register offset in bits [5:0].
func (in Instruction) Offset6() uint16 {
	return SignExtend(uint16(in)&0x3F, 6)
}

// PCOffset9 returns the sign-extended PC-relative offset in bits [8:0].
func (in Instruction) PCOffset9() uint16 {
	return SignExtend(uint16(in)&0x1FF, 9)
}

// PCOffset11 returns the sign-extended JSR offset in bits [10:0].
func (in Instruction) PCOffset11() uint16 {
	return SignExtend(uint16(in)&0x7FF, 11)
}

// NZP returns the branch condition mask in bits [11:9].
func (in Instruction) NZP() Flag {
	return Flag(uint16(in>>9) & 0x7)
}

// Vector returns the trap vector in the low byte.
func (in Instruction) Vector() TrapVector {
	return TrapVector(in & 0xFF)
}

// MakeOperate creates the register form of an ADD or AND instruction.
func MakeOperate(op Opcode, dr, sr1, sr2 uint16) Instruction {
	return Instruction(uint16(op)<<12 | (dr&7)<<9 | (sr1&7)<<6 | (sr2 & 7))
}

// MakeOperateImm creates the immediate form of an ADD or AND instruction.
func MakeOperateImm(op Opcode, dr, sr1 uint16, imm5 int16) Instruction {
	return Instruction(uint16(op)<<12 | (dr&7)<<9 | (sr1&7)<<6 | 1<<5 | uint16(imm5)&0x1F)
}

// MakeNot creates a NOT instruction.
func MakeNot(dr, sr uint16) Instruction {
	return Instruction(uint16(OP_NOT)<<12 | (dr&7)<<9 | (sr&7)<<6 | 0x3F)
}

// MakeBranch creates a BR instruction taken when the condition register
// matches any flag in nzp.
func MakeBranch(nzp Flag, offset int16) Instruction {
	return Instruction(uint16(OP_BR)<<12 | uint16(nzp&7)<<9 | uint16(offset)&0x1FF)
}

// MakeJump creates a JMP through the base register. Base r7 is RET.
func MakeJump(base uint16) Instruction {
	return Instruction(uint16(OP_JMP)<<12 | (base&7)<<6)
}

// MakeJsr creates the PC-relative (long) form of JSR.
func MakeJsr(offset int16) Instruction {
	return Instruction(uint16(OP_JSR)<<12 | 1<<11 | uint16(offset)&0x7FF)
}

// MakeJsrr creates the register form of JSR.
func MakeJsrr(base uint16) Instruction {
	return Instruction(uint16(OP_JSR)<<12 | (base&7)<<6)
}

// MakePCRelative creates an LD, LDI, LEA, ST or STI instruction.
func MakePCRelative(op Opcode, reg uint16, offset int16) Instruction {
	return Instruction(uint16(op)<<12 | (reg&7)<<9 | uint16(offset)&0x1FF)
}

// MakeBased creates an LDR or STR instruction.
func MakeBased(op Opcode, reg, base uint16, offset int16) Instruction {
	return Instruction(uint16(op)<<12 | (reg&7)<<9 | (base&7)<<6 | uint16(offset)&0x3F)
}

// MakeTrap creates a TRAP instruction for the given service vector.
func MakeTrap(vector TrapVector) Instruction {
	return Instruction(uint16(OP_TRAP)<<12 | uint16(vector)&0xFF)
}

// nzp renders a branch condition mask as its n/z/p letters.
func nzp(mask Flag) (out string) {
	if mask&FL_NEG != 0 {
		out += "n"
	}
	if mask&FL_ZRO != 0 {
		out += "z"
	}
	if mask&FL_POS != 0 {
		out += "p"
	}
	return
}

// String returns a compact mnemonic form of the instruction.
func (in Instruction) String() (out string) {
	op := in.Opcode()

	switch op {
	case OP_ADD, OP_AND:
		if in.Immediate() {
			out = fmt.Sprintf("%v.r%d.r%d.#%d", op, in.DR(), in.SR1(), int16(in.Imm5()))
		} else {
			out = fmt.Sprintf("%v.r%d.r%d.r%d", op, in.DR(), in.SR1(), in.SR2())
		}
	case OP_NOT:
		out = fmt.Sprintf("%v.r%d.r%d", op, in.DR(), in.SR1())
	case OP_BR:
		out = fmt.Sprintf("%v%v.%+d", op, nzp(in.NZP()), int16(in.PCOffset9()))
	case OP_JMP:
		out = fmt.Sprintf("%v.r%d", op, in.SR1())
	case OP_JSR:
		if in.Long() {
			out = fmt.Sprintf("%v.%+d", op, int16(in.PCOffset11()))
		} else {
			out = fmt.Sprintf("jsrr.r%d", in.SR1())
		}
	case OP_LD, OP_LDI, OP_LEA, OP_ST, OP_STI:
		out = fmt.Sprintf("%v.r%d.%+d", op, in.DR(), int16(in.PCOffset9()))
	case OP_LDR, OP_STR:
		out = fmt.Sprintf("%v.r%d.r%d.%+d", op, in.DR(), in.SR1(), int16(in.Offset6()))
	case OP_TRAP:
		out = fmt.Sprintf("%v.%v", op, in.Vector())
	default:
		out = op.String()
	}

	return
}
