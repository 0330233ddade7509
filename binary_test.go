package treectx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBinaryContent(t *testing.T) {
	assert := assert.New(t)

	assert.False(IsBinaryContent(nil))
	assert.False(IsBinaryContent([]byte("")))
	assert.False(IsBinaryContent([]byte("package main\n\nfunc main() {}\n")))
	assert.False(IsBinaryContent([]byte("héllo wörld, 你好")))

	assert.True(IsBinaryContent([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}))
	assert.True(IsBinaryContent(bytes.Repeat([]byte{0x00, 'a'}, 50)))
}

func TestIsBinaryContentTolerance(t *testing.T) {
	assert := assert.New(t)

	// A stray control byte in otherwise printable text stays under the
	// 10% sample threshold.
	content := append([]byte("just some regular prose that keeps going for a while "), 0x01)
	content = append(content, []byte(" and then keeps going with plenty more printable text after")...)
	assert.False(IsBinaryContent(content))
}
