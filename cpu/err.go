package cpu

import (
	"errors"

	"github.com/ezrec/lc3/translate"
)

var f = translate.From

var (
	// Device errors
	ErrNoKeyboard = errors.New(f("no keyboard attached"))
	ErrNoConsole  = errors.New(f("no console attached"))

	// Image errors
	ErrImageTruncated = errors.New(f("image missing origin word"))
)

// ErrInstruction is the fault raised by dispatch of the reserved RTI and
// RES opcodes.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("unsupported instruction 0x%04x %v", uint16(ei), Instruction(ei).String())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

// ErrTrap identifies the trap service where an I/O failure occurred.
type ErrTrap TrapVector

func (et ErrTrap) Error() string {
	return f("trap %v", TrapVector(et).String())
}

func (et ErrTrap) Is(err error) (ok bool) {
	_, ok = err.(ErrTrap)
	return
}
