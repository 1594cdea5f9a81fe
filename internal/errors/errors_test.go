package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Empty(t, Format(nil))
	assert.Equal(t, "Error: boom", Format(fmt.Errorf("boom")))

	wrapped := fmt.Errorf("saving snapshot: %w", fmt.Errorf("disk full"))
	assert.Equal(t, "Error: saving snapshot: disk full", Format(wrapped))
}
