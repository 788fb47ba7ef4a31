package io

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermPipe(t *testing.T) {
	assert := assert.New(t)

	rd, wr, err := os.Pipe()
	assert.NoError(err)
	defer rd.Close()
	defer wr.Close()

	kb := NewTerm(rd)

	// A pipe is not a terminal: raw mode is a no-op.
	assert.NoError(kb.Raw())
	assert.NoError(kb.Restore())

	// Nothing pending: the poll times out.
	assert.False(kb.Poll())

	_, err = wr.Write([]byte{'k'})
	assert.NoError(err)

	assert.True(kb.Poll())

	key, err := kb.Key()
	assert.NoError(err)
	assert.Equal(byte('k'), key)
}
