package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_Push(t *testing.T) {

	b := NewBuffer(3)

	for i := 0; i < 3; i++ {
		_, ok := b.Push(float64(i))
		assert.False(t, ok)
	}
	assert.Equal(t, []float64{0, 1, 2}, b.Get())

	v, ok := b.Push(3)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
	assert.Equal(t, []float64{1, 2, 3}, b.Get())
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 3, b.Size())

	// get returns a copy
	vv := b.Get()
	vv[0] = 42
	assert.Equal(t, []float64{1, 2, 3}, b.Get())

	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, []float64{}, b.Get())
}
