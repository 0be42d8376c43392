package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorLiteral(t *testing.T) {
	t.Run("Format", func(t *testing.T) {
		assert.Equal(t, "[0.1,0.2,0.3]", vectorLiteral([]float32{0.1, 0.2, 0.3}))
	})

	t.Run("Single Value", func(t *testing.T) {
		assert.Equal(t, "[1]", vectorLiteral([]float32{1}))
	})

	t.Run("Negative And Zero", func(t *testing.T) {
		assert.Equal(t, "[-0.5,0]", vectorLiteral([]float32{-0.5, 0}))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "[]", vectorLiteral(nil))
	})
}
