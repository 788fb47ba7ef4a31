package io

import (
	"os"
	"time"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollTimeout bounds a single keyboard availability check.
const pollTimeout = 20 * time.Millisecond

// Term is a Keyboard reading raw keystrokes from a terminal. On inputs
// that are not terminals (pipes, files) raw mode is skipped and reads
// fall through to the file itself.
type Term struct {
	In *os.File

	saved unix.Termios
	raw   bool
}

var _ Keyboard = (*Term)(nil)

// NewTerm returns a Term reading from in.
func NewTerm(in *os.File) *Term {
	return &Term{In: in}
}

// Raw switches the terminal to raw mode: no echo, no line buffering.
// Restore must be called on every exit path once Raw has taken effect.
func (t *Term) Raw() (err error) {
	if !term.IsTerminal(int(t.In.Fd())) {
		return
	}

	err = termios.Tcgetattr(t.In.Fd(), &t.saved)
	if err != nil {
		return
	}

	attr := t.saved
	attr.Lflag &^= unix.ICANON | unix.ECHO
	err = termios.Tcsetattr(t.In.Fd(), termios.TCSANOW, &attr)
	if err != nil {
		return
	}

	t.raw = true

	return
}

// Restore reverts the terminal attributes saved by Raw. Safe to call more
// than once, and a no-op when Raw never took effect.
func (t *Term) Restore() (err error) {
	if !t.raw {
		return
	}
	t.raw = false

	return termios.Tcsetattr(t.In.Fd(), termios.TCSANOW, &t.saved)
}

// Poll waits up to pollTimeout for the input to become readable.
func (t *Term) Poll() bool {
	fd := int(t.In.Fd())

	var fds unix.FdSet
	fds.Set(fd)

	tv := unix.NsecToTimeval(pollTimeout.Nanoseconds())
	n, err := unix.Select(fd+1, &fds, nil, nil, &tv)

	return err == nil && n > 0
}

// Key reads exactly one byte, blocking until one arrives.
func (t *Term) Key() (key byte, err error) {
	var one [1]byte
	_, err = t.In.Read(one[:])
	key = one[0]

	return
}
