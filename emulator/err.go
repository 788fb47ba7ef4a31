package emulator

import (
	"github.com/ezrec/lc3/translate"
)

var f = translate.From

// ErrImage reports a program image that could not be loaded.
type ErrImage struct {
	Path string
	Err  error
}

func (err *ErrImage) Error() string {
	return f("failed to load image: %s", err.Path)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
