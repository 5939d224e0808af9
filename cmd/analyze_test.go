package cmd

import (
	"errors"
	"testing"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
	"github.com/shouni/gemini-bookcover-kit/pkg/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCommand(t *testing.T) {
	t.Run("モデルのテキストと色調レポートを表示する", func(t *testing.T) {
		useTestApp(t, newMergeStore(t), &mockMerger{analyzeText: "Place the face slightly left."})

		out, err := runRoot(t, "analyze", "--face", "face.png", "--cover", "cover.png")
		require.NoError(t, err)
		assert.Contains(t, out, "Place the face slightly left.")
		assert.Contains(t, out, "Tone: face #")
	})

	t.Run("解析に失敗しても固定文言と色調レポートを表示してエラーを返す", func(t *testing.T) {
		cause := domain.NewError(domain.KindNoContent, "analyze", "no text in response", errors.New("empty"))
		useTestApp(t, newMergeStore(t), &mockMerger{analyzeText: generator.UnableToAnalyze, analyzeErr: cause})

		out, err := runRoot(t, "analyze", "--face", "face.png", "--cover", "cover.png")
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindNoContent))
		assert.Contains(t, out, generator.UnableToAnalyze)
		assert.Contains(t, out, "Tone: face #")
	})

	t.Run("表紙が検証に失敗した場合は解析しない", func(t *testing.T) {
		store := newMemStore()
		store.putPNG(t, "face.png", 300, 300)
		store.putPNG(t, "cover.png", 150, 150)
		useTestApp(t, store, &mockMerger{analyzeText: "unused"})

		out, err := runRoot(t, "analyze", "--face", "face.png", "--cover", "cover.png")
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
		assert.NotContains(t, out, "unused")
	})
}

func TestPingCommand(t *testing.T) {
	t.Run("接続成功のメッセージを表示する", func(t *testing.T) {
		useTestApp(t, newMemStore(), &mockMerger{conn: domain.ConnectionResult{Connected: true, Message: "API connection successful"}})

		out, err := runRoot(t, "ping")
		require.NoError(t, err)
		assert.Contains(t, out, "API connection successful")
	})

	t.Run("接続失敗時はメッセージを表示してエラーを返す", func(t *testing.T) {
		cause := domain.NewError(domain.KindTransport, "test-connection", "API connection failed", errors.New("dial"))
		useTestApp(t, newMemStore(), &mockMerger{conn: domain.ConnectionResult{Message: "API connection failed: dial"}, connErr: cause})

		out, err := runRoot(t, "ping")
		require.Error(t, err)
		assert.Contains(t, out, "API connection failed: dial")
	})
}
