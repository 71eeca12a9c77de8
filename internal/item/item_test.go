package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizesToNFC(t *testing.T) {
	// "é" as a precomposed rune vs "e" + combining acute.
	composed := "café"
	decomposed := "café"

	a, err := New(composed)
	require.NoError(t, err)
	b, err := New(decomposed)
	require.NoError(t, err)

	assert.Equal(t, a, b, "NFC normalization must unify equivalent text")
	assert.Equal(t, composed, a.Description)
}

func TestNewTrimsWhitespace(t *testing.T) {
	it, err := New("  fix the roof\t\n")
	require.NoError(t, err)
	assert.Equal(t, "fix the roof", it.Description)
}

func TestNewRejectsBlank(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := New(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestFromDescriptionsPreservesOrder(t *testing.T) {
	items, err := FromDescriptions([]string{"c", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, Descriptions(items))
}

func TestFromDescriptionsReportsPosition(t *testing.T) {
	_, err := FromDescriptions([]string{"ok", "  ", "also ok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 2")
}
