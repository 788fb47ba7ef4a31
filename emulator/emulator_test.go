package emulator

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lc3/cpu"
	"github.com/ezrec/lc3/io"
)

// imageFile writes a big-endian program image to a temporary file.
func imageFile(t *testing.T, origin uint16, words ...uint16) (path string) {
	data := binary.BigEndian.AppendUint16(nil, origin)
	for _, word := range words {
		data = binary.BigEndian.AppendUint16(data, word)
	}

	path = filepath.Join(t.TempDir(), "test.obj")
	err := os.WriteFile(path, data, 0o644)
	assert.NoError(t, err)

	return
}

func testEmulator(keys []byte) (emu *Emulator, out *bytes.Buffer) {
	emu = New()

	out = &bytes.Buffer{}
	emu.Display.Output = out
	emu.SetKeyboard(&io.Buffer{Data: keys})

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := New()

	assert.False(emu.Verbose)
	assert.True(emu.Machine.Running)
	assert.Equal(cpu.PC_START, emu.Machine.PC)
}

func TestEmulatorAddHalt(t *testing.T) {
	assert := assert.New(t)

	emu, out := testEmulator(nil)

	path := imageFile(t, 0x3000,
		uint16(cpu.MakeOperateImm(cpu.OP_ADD, 0, 0, 5)),
		uint16(cpu.MakeTrap(cpu.TRAP_HALT)),
	)
	assert.NoError(emu.LoadImage(path))

	err := emu.Run()
	assert.NoError(err)

	assert.Equal(uint16(5), emu.Machine.Register[0])
	assert.Equal(cpu.FL_POS, emu.Machine.Cond)
	assert.False(emu.Machine.Running)
	assert.Equal("HALT\n", out.String())
	assert.Equal(2, emu.Machine.Ticks)
}

func TestEmulatorPuts(t *testing.T) {
	assert := assert.New(t)

	emu, out := testEmulator(nil)

	path := imageFile(t, 0x3000,
		uint16(cpu.MakePCRelative(cpu.OP_LEA, 0, 2)),
		uint16(cpu.MakeTrap(cpu.TRAP_PUTS)),
		uint16(cpu.MakeTrap(cpu.TRAP_HALT)),
		uint16('H'),
		uint16('I'),
		0,
	)
	assert.NoError(emu.LoadImage(path))

	err := emu.Run()
	assert.NoError(err)
	assert.Equal("HIHALT\n", out.String())
}

func TestEmulatorGetcOut(t *testing.T) {
	assert := assert.New(t)

	emu, out := testEmulator([]byte{'A'})

	path := imageFile(t, 0x3000,
		uint16(cpu.MakeTrap(cpu.TRAP_GETC)),
		uint16(cpu.MakeTrap(cpu.TRAP_OUT)),
		uint16(cpu.MakeTrap(cpu.TRAP_HALT)),
	)
	assert.NoError(emu.LoadImage(path))

	err := emu.Run()
	assert.NoError(err)
	assert.Equal(uint16('A'), emu.Machine.Register[0])
	assert.Equal("AHALT\n", out.String())
}

func TestEmulatorBranch(t *testing.T) {
	assert := assert.New(t)

	// A branch whose condition mask misses the current flag falls
	// through to the next instruction.
	emu, _ := testEmulator(nil)
	path := imageFile(t, 0x3000,
		uint16(cpu.MakeOperateImm(cpu.OP_ADD, 0, 0, 5)), // r0 = 5 (pos)
		uint16(cpu.MakeBranch(cpu.FL_ZRO, 1)),
		uint16(cpu.MakeOperateImm(cpu.OP_ADD, 0, 0, 1)), // r0 = 6
		uint16(cpu.MakeTrap(cpu.TRAP_HALT)),
	)
	assert.NoError(emu.LoadImage(path))
	assert.NoError(emu.Run())
	assert.Equal(uint16(6), emu.Machine.Register[0])

	// The same program with a matching mask skips the increment.
	emu, _ = testEmulator(nil)
	path = imageFile(t, 0x3000,
		uint16(cpu.MakeOperateImm(cpu.OP_ADD, 0, 0, 5)),
		uint16(cpu.MakeBranch(cpu.FL_POS, 1)),
		uint16(cpu.MakeOperateImm(cpu.OP_ADD, 0, 0, 1)),
		uint16(cpu.MakeTrap(cpu.TRAP_HALT)),
	)
	assert.NoError(emu.LoadImage(path))
	assert.NoError(emu.Run())
	assert.Equal(uint16(5), emu.Machine.Register[0])
}

func TestEmulatorKeyboardRegisters(t *testing.T) {
	assert := assert.New(t)

	emu, _ := testEmulator([]byte{'Q'})

	// Poll the keyboard status register until the ready bit appears,
	// then fetch the key from the data register.
	path := imageFile(t, 0x3000,
		uint16(cpu.MakePCRelative(cpu.OP_LDI, 0, 4)), // r0 = [KBSR]
		uint16(cpu.MakeBranch(cpu.FL_ZRO, -2)),       // loop while clear
		uint16(cpu.MakePCRelative(cpu.OP_LDI, 1, 3)), // r1 = [KBDR]
		uint16(cpu.MakeTrap(cpu.TRAP_HALT)),
		0,
		cpu.MR_KBSR,
		cpu.MR_KBDR,
	)
	assert.NoError(emu.LoadImage(path))

	err := emu.Run()
	assert.NoError(err)
	assert.Equal(uint16(1<<15), emu.Machine.Register[0])
	assert.Equal(uint16('Q'), emu.Machine.Register[1])
}

func TestEmulatorLoadFailure(t *testing.T) {
	assert := assert.New(t)

	emu := New()

	path := filepath.Join(t.TempDir(), "missing.obj")
	err := emu.LoadImage(path)
	assert.Error(err)
	assert.ErrorContains(err, "failed to load image")

	var ei *ErrImage
	assert.ErrorAs(err, &ei)
	assert.Equal(path, ei.Path)
}

func TestEmulatorLoadEmpty(t *testing.T) {
	assert := assert.New(t)

	emu := New()

	path := filepath.Join(t.TempDir(), "empty.obj")
	assert.NoError(os.WriteFile(path, nil, 0o644))

	err := emu.LoadImage(path)
	assert.ErrorIs(err, cpu.ErrImageTruncated)
}

func TestEmulatorMultiImageReset(t *testing.T) {
	assert := assert.New(t)

	emu, _ := testEmulator(nil)

	first := imageFile(t, 0x3000,
		uint16(cpu.MakePCRelative(cpu.OP_LD, 0, 0xFF)), // r0 = [0x3100]
		uint16(cpu.MakeTrap(cpu.TRAP_HALT)),
	)
	second := imageFile(t, 0x3100, 0x00AA)

	assert.NoError(emu.LoadImage(first))
	assert.NoError(emu.LoadImage(second))

	assert.NoError(emu.Run())
	assert.Equal(uint16(0x00AA), emu.Machine.Register[0])
	assert.False(emu.Machine.Running)

	// Reset replays both images into a cleared machine.
	emu.Reset()
	assert.True(emu.Machine.Running)
	assert.Equal(cpu.PC_START, emu.Machine.PC)
	assert.Equal(uint16(0), emu.Machine.Register[0])
	assert.Equal(uint16(0x00AA), emu.Machine.Memory.Words[0x3100])

	assert.NoError(emu.Run())
	assert.Equal(uint16(0x00AA), emu.Machine.Register[0])
}

func TestEmulatorStep(t *testing.T) {
	assert := assert.New(t)

	emu, _ := testEmulator(nil)

	path := imageFile(t, 0x3000,
		uint16(cpu.MakeOperateImm(cpu.OP_ADD, 0, 0, 1)),
		uint16(cpu.MakeTrap(cpu.TRAP_HALT)),
	)
	assert.NoError(emu.LoadImage(path))

	done, err := emu.Step()
	assert.NoError(err)
	assert.False(done)

	done, err = emu.Step()
	assert.NoError(err)
	assert.True(done)
}
