package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesEmbeddedTemplates(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Contains(t, c.Names(), DefaultTemplate)
}

func TestComposeDefaultTemplate(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	msg, err := c.Compose(DefaultTemplate, map[string]string{"name": "Ada"})
	require.NoError(t, err)

	assert.Equal(t, "Maintenance payment bill", msg.Subject)
	assert.Contains(t, msg.Body, "Dear Ada,")
}

func TestComposeEmptyNameFallsBackToDefault(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	msg, err := c.Compose("", map[string]string{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance payment bill", msg.Subject)
}

func TestComposeUnknownTemplate(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	_, err = c.Compose("nonexistent", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}
