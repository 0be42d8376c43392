package runid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunID(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "run-123")
		assert.Equal(t, "run-123", FromContext(ctx))
	})

	t.Run("Missing", func(t *testing.T) {
		assert.Equal(t, "", FromContext(context.Background()))
	})

	t.Run("New Is Unique", func(t *testing.T) {
		assert.NotEqual(t, New(), New())
	})
}
