package io

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	d := &Display{Output: out}

	assert.NoError(d.WriteByte('h'))
	assert.NoError(d.WriteByte('i'))

	// Nothing reaches the writer until the explicit flush.
	assert.Empty(out.Bytes())

	assert.NoError(d.Flush())
	assert.Equal("hi", out.String())
}
