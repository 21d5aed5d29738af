package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("Should load the embedded english messages", func(t *testing.T) {
		trans, err := NewTranslations("en")

		require.NoError(t, err)
		assert.Equal(t, "en", trans.Language())
		assert.Equal(t, "Hi! Please review these PR:", trans.GetMessage("digest_needs_review_header", 0, nil))
	})

	t.Run("Should load the embedded spanish messages", func(t *testing.T) {
		trans, err := NewTranslations("es")

		require.NoError(t, err)
		assert.Equal(t, "No hay pull requests para reportar", trans.GetMessage("ui_nothing_to_send", 0, nil))
	})

	t.Run("Should fail with empty language", func(t *testing.T) {
		trans, err := NewTranslations("")

		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("Should fail with an unsupported language", func(t *testing.T) {
		trans, err := NewTranslations("fr")

		assert.Error(t, err)
		assert.Nil(t, trans)
	})
}

func TestGetMessage(t *testing.T) {
	trans, err := NewTranslations("en")
	require.NoError(t, err)

	t.Run("Should render template data", func(t *testing.T) {
		msg := trans.GetMessage("ui_digests_sent", 2, map[string]interface{}{
			"Count":   2,
			"Channel": "#reviews",
		})

		assert.Equal(t, "Sent 2 message(s) to #reviews", msg)
	})

	t.Run("Should report missing messages", func(t *testing.T) {
		assert.Equal(t, "Translation missing: nope", trans.GetMessage("nope", 0, nil))
	})
}

func TestSetLanguage(t *testing.T) {
	trans, err := NewTranslations("en")
	require.NoError(t, err)

	require.NoError(t, trans.SetLanguage("es"))
	assert.Equal(t, "es", trans.Language())
	assert.Equal(t, "¡Hola! Por favor revisen estos PR:", trans.GetMessage("digest_needs_review_header", 0, nil))

	assert.Error(t, trans.SetLanguage("de"))
	assert.Equal(t, "es", trans.Language())
}
