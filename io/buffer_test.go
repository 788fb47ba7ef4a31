package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer(t *testing.T) {
	assert := assert.New(t)

	kb := &Buffer{Data: []byte("ab")}

	assert.True(kb.Poll())

	key, err := kb.Key()
	assert.NoError(err)
	assert.Equal(byte('a'), key)

	key, err = kb.Key()
	assert.NoError(err)
	assert.Equal(byte('b'), key)

	assert.False(kb.Poll())

	_, err = kb.Key()
	assert.ErrorIs(err, ErrNoKey)
}
