package generator

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
	"github.com/shouni/gemini-bookcover-kit/pkg/imgutil"
	"google.golang.org/genai"
)

func (c *MergeClient) executeRequest(ctx context.Context, model string, parts []*genai.Part, modality genai.Modality, seed *int64) (*genai.GenerateContentResponse, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(modality)},
		Seed:               seedToPtrInt32(seed),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	slog.DebugContext(ctx, "Geminiへリクエストを送信します", "model", model, "parts", len(parts), "modality", modality)
	return c.aiClient.GenerateContent(ctx, model, contents, config)
}

// preparePart は Upload を送信用に整形し、genai.Part に変換します。
func (c *MergeClient) preparePart(ctx context.Context, up *domain.Upload) (*genai.Part, error) {
	key := ""
	if c.cache != nil && len(up.Data) > 0 {
		key = preparedCacheKey(up.Data, c.maxImageSize, c.jpegQuality)
		if val, ok := c.cache.Get(key); ok {
			if data, ok := val.([]byte); ok {
				return c.toPart(data)
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "role", up.Role, "type", fmt.Sprintf("%T", val))
		}
	}

	data, err := c.encodeForTransmission(up)
	if err != nil {
		return nil, err
	}

	if key != "" {
		c.cache.Set(key, data, c.expiration)
	}
	return c.toPart(data)
}

func (c *MergeClient) encodeForTransmission(up *domain.Upload) ([]byte, error) {
	prepared := imgutil.Prepare(up.Image, c.maxImageSize)
	data, err := imgutil.EncodeJPEG(prepared, c.jpegQuality)
	if err != nil {
		return nil, fmt.Errorf("%s画像のエンコードに失敗しました: %w", up.Role, err)
	}
	return data, nil
}

func (c *MergeClient) toPart(data []byte) (*genai.Part, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("MIMEタイプが画像ではありません: %s", mimeType)
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}, nil
}

// parseImage は応答の最初の候補から最初のインライン画像を取り出します。
func (c *MergeClient) parseImage(resp *genai.GenerateContentResponse, seed int64) (*ImageOutput, error) {
	candidate, err := firstCandidate(resp)
	if err != nil {
		return nil, err
	}

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &ImageOutput{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
					UsedSeed: seed,
				}, nil
			}
		}
	}

	if err := finishReasonError(candidate); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("画像データが見つかりませんでした")
}

// parseText は応答の最初の候補から最初の空でないテキストを取り出します。
func (c *MergeClient) parseText(resp *genai.GenerateContentResponse) (string, error) {
	candidate, err := firstCandidate(resp)
	if err != nil {
		return "", err
	}

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && !part.Thought && strings.TrimSpace(part.Text) != "" {
				return part.Text, nil
			}
		}
	}

	if err := finishReasonError(candidate); err != nil {
		return "", err
	}
	return "", fmt.Errorf("テキストが見つかりませんでした")
}

func firstCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("プロンプトがブロックされました (BlockReason: %s)", resp.PromptFeedback.BlockReason)
		}
		return nil, fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}
	// 最初の候補 (Candidate) のみを利用する。
	return resp.Candidates[0], nil
}

// 安全フィルター等によるブロックの確認
func finishReasonError(candidate *genai.Candidate) error {
	if candidate.FinishReason != "" &&
		candidate.FinishReason != genai.FinishReasonUnspecified &&
		candidate.FinishReason != genai.FinishReasonStop {
		return fmt.Errorf("生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}
	return nil
}
