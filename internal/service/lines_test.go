package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitProxyLines(t *testing.T) {
	t.Run("trims and drops blanks", func(t *testing.T) {
		got := SplitProxyLines("a\n\n  b \n")
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, SplitProxyLines(""))
	})

	t.Run("whitespace only", func(t *testing.T) {
		assert.Nil(t, SplitProxyLines("  \n\t\n   \n"))
	})

	t.Run("windows line endings", func(t *testing.T) {
		got := SplitProxyLines("1.1.1.1:8080\r\n2.2.2.2:8080\r\n")
		assert.Equal(t, []string{"1.1.1.1:8080", "2.2.2.2:8080"}, got)
	})

	t.Run("preserves order", func(t *testing.T) {
		got := SplitProxyLines("c\na\nb")
		assert.Equal(t, []string{"c", "a", "b"}, got)
	})
}
