package cmd

import (
	"testing"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand(t *testing.T) {
	t.Run("適切な画像は通信なしで合格する", func(t *testing.T) {
		store := newMemStore()
		store.putPNG(t, "face.png", 300, 300)
		store.putPNG(t, "gs://covers/cover.png", 600, 900)
		useTestApp(t, store, newRealMerger(t))

		out, err := runRoot(t, "validate", "--face", "face.png", "--cover", "gs://covers/cover.png")
		require.NoError(t, err)
		assert.Contains(t, out, "Face image accepted")
		assert.Contains(t, out, "Book cover image accepted")
		assert.Contains(t, out, "Images are suitable for merging")
	})

	t.Run("小さすぎる顔写真は不合格になる", func(t *testing.T) {
		store := newMemStore()
		store.putPNG(t, "tiny.png", 50, 50)
		store.putPNG(t, "cover.png", 600, 900)
		useTestApp(t, store, newRealMerger(t))

		out, err := runRoot(t, "validate", "--face", "tiny.png", "--cover", "cover.png")
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
		assert.Contains(t, out, "Face image is too small (minimum 100x100 pixels)")
	})

	t.Run("APIキーが無くても実行できる", func(t *testing.T) {
		store := newMemStore()
		store.putPNG(t, "face.png", 300, 300)
		store.putPNG(t, "cover.png", 600, 900)
		useTestApp(t, store, newRealMerger(t))
		t.Setenv("GEMINI_API_KEY", "")

		_, err := runRoot(t, "validate", "--face", "face.png", "--cover", "cover.png")
		assert.NoError(t, err)
	})
}

func TestPreRunAppE_RequiresAPIKey(t *testing.T) {
	useTestApp(t, newMemStore(), &mockMerger{})
	t.Setenv("GEMINI_API_KEY", "")

	_, err := runRoot(t, "ping")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConfiguration))
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
