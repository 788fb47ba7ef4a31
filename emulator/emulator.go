// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"os"

	"github.com/ezrec/lc3/cpu"
	"github.com/ezrec/lc3/io"
)

// Emulator owns one machine plus its console devices and the images
// loaded into it, so a reset can replay them.
type Emulator struct {
	Verbose      bool // If set, enables verbose logging.
	*cpu.Machine      // The machine being run.

	Display io.Display // Console output device.

	images []*cpu.Image
}

// New creates an emulator wired to stdout, with no keyboard attached.
func New() (emu *Emulator) {
	emu = &Emulator{
		Machine: cpu.New(),
	}

	emu.Display.Output = os.Stdout
	emu.Machine.Console = &emu.Display

	return
}

// SetKeyboard attaches the key source seen by the memory-mapped device
// registers and the input trap services.
func (emu *Emulator) SetKeyboard(kb io.Keyboard) {
	emu.Machine.Memory.Keyboard = kb
}

// LoadImage reads the program image file at path into machine memory.
// The image is retained for replay by Reset.
func (emu *Emulator) LoadImage(path string) (err error) {
	file, err := os.Open(path)
	if err != nil {
		return &ErrImage{Path: path, Err: err}
	}
	defer file.Close()

	img, err := cpu.ReadImage(file)
	if err != nil {
		return &ErrImage{Path: path, Err: err}
	}

	emu.images = append(emu.images, img)
	emu.Machine.Load(img)

	return
}

// Reset restores the power-on machine state and replays every loaded
// image.
func (emu *Emulator) Reset() {
	emu.Machine.Reset()

	for _, img := range emu.images {
		emu.Machine.Load(img)
	}
}

// Step executes a single instruction. done reports that the machine has
// halted.
func (emu *Emulator) Step() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	err = emu.Machine.Tick()
	done = !emu.Machine.Running

	return
}

// Run executes instructions until the machine halts.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Step()
		if err != nil {
			return
		}
	}

	return
}
