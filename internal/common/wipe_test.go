package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeBytes(t *testing.T) {
	b := []byte("hunter2!")
	WipeBytes(b)
	assert.Equal(t, make([]byte, 8), b)
}

func TestWipeBytes_NilAndEmpty(t *testing.T) {
	WipeBytes(nil)
	WipeBytes([]byte{})
}
