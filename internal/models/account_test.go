package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusActive, StatusInactive, StatusPaused, StatusBanned} {
		assert.True(t, ValidStatus(s), s)
	}

	for _, s := range []string{"", "ACTIVE", "deleted", "Banned", "frozen"} {
		assert.False(t, ValidStatus(s), s)
	}
}
