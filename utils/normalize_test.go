package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "marcal", Normalize("  Marçal "))
	assert.Equal(t, "joao", Normalize("JOÃO"))
	assert.Equal(t, "lucas", Normalize("Lucas"))
	assert.Equal(t, "", Normalize("   "))
}

func TestNameTokens(t *testing.T) {
	assert.Equal(t, []string{"luiz", "felipe", "marcal", "kosse"}, NameTokens("Luiz Felipe Marçal Kosse"))
	// connector words are dropped
	assert.Equal(t, []string{"joao", "silva"}, NameTokens("João da Silva"))
	assert.Nil(t, NameTokens("de e da"))
}
