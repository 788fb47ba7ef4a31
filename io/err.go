package io

import (
	"errors"

	"github.com/ezrec/lc3/translate"
)

var f = translate.From

var (
	// Keyboard errors
	ErrNoKey = errors.New(f("no key pending"))
)
