package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, LoadDefaults())
	for _, name := range []FontName{Regular, Bold, Title, Score, Small} {
		assert.NotNil(t, name.Get(), name)
	}
	assert.Greater(t, Width(Title.Get(), "PONG"), Width(Small.Get(), "PONG"))
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	assert.Error(t, LoadFont("broken", []byte("not a font")))
	assert.Panics(t, func() { FontName("missing").Get() })
}
