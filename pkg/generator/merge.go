package generator

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
	"github.com/shouni/gemini-bookcover-kit/pkg/imgutil"
	"github.com/shouni/gemini-bookcover-kit/pkg/prompt"
	"github.com/shouni/gemini-bookcover-kit/pkg/validation"
	"google.golang.org/genai"
)

// Merge は顔写真と表紙を前処理し、スタイル別プロンプトと共に画像生成を依頼します。
// 応答に画像が含まれない場合や通信に失敗した場合は nil と Kind 付きエラーを返します。
// 呼び出し側はこれを再試行可能な失敗として扱えます。
func (c *MergeClient) Merge(ctx context.Context, req *domain.MergeRequest) (*domain.MergeResult, error) {
	const op = "merge"

	if req == nil {
		return nil, domain.NewError(domain.KindValidation, op, "merge request is required", nil)
	}
	if err := requireUploads(op, req.Face, req.BookCover); err != nil {
		return nil, err
	}
	if outcome := c.ValidateImages(req.Face.Image, req.BookCover.Image); !outcome.Valid {
		return nil, domain.NewError(domain.KindValidation, op, outcome.Reason, nil)
	}

	facePart, err := c.preparePart(ctx, req.Face)
	if err != nil {
		return nil, domain.NewError(domain.KindValidation, op, "failed to prepare face image", err)
	}
	coverPart, err := c.preparePart(ctx, req.BookCover)
	if err != nil {
		return nil, domain.NewError(domain.KindValidation, op, "failed to prepare book cover image", err)
	}

	parts := []*genai.Part{
		{Text: prompt.Build(req.Style)},
		facePart,
		coverPart,
	}

	slog.InfoContext(ctx, "合成画像の生成をリクエストします",
		"model", c.imageModel,
		"style", req.Style.String(),
		"parts", len(parts),
	)

	resp, err := c.executeRequest(ctx, c.imageModel, parts, genai.ModalityImage, req.Seed)
	if err != nil {
		slog.ErrorContext(ctx, "合成画像の生成に失敗しました", "error", err)
		return nil, domain.NewError(domain.KindTransport, op, "error generating merged image", err)
	}

	out, err := c.parseImage(resp, dereferenceSeed(req.Seed))
	if err != nil {
		slog.WarnContext(ctx, "応答に画像が含まれていませんでした", "error", err)
		return nil, domain.NewError(domain.KindNoContent, op, "no image in response", err)
	}

	img, _, err := imgutil.Decode(out.Data)
	if err != nil {
		return nil, domain.NewError(domain.KindTransport, op, "malformed image in response", err)
	}
	pngData, err := imgutil.EncodePNG(img)
	if err != nil {
		return nil, domain.NewError(domain.KindTransport, op, "failed to encode merged image", err)
	}

	slog.InfoContext(ctx, "合成画像を受信しました",
		"mime_type", out.MimeType,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
	)

	return &domain.MergeResult{
		Image:    img,
		PNG:      pngData,
		MimeType: out.MimeType,
		UsedSeed: out.UsedSeed,
	}, nil
}

// Analyze は2枚の画像を解析し、配置や色調補正に関するアドバイスを返します。
// テキストが得られない場合は UnableToAnalyze と KindNoContent のエラーを、
// 通信に失敗した場合は人間向けのエラーメッセージと KindTransport のエラーを返します。
func (c *MergeClient) Analyze(ctx context.Context, face, bookCover *domain.Upload) (string, error) {
	const op = "analyze"

	if err := requireUploads(op, face, bookCover); err != nil {
		return fmt.Sprintf("Error analyzing images: %v", err), err
	}

	facePart, err := c.preparePart(ctx, face)
	if err != nil {
		return fmt.Sprintf("Error analyzing images: %v", err), domain.NewError(domain.KindValidation, op, "failed to prepare face image", err)
	}
	coverPart, err := c.preparePart(ctx, bookCover)
	if err != nil {
		return fmt.Sprintf("Error analyzing images: %v", err), domain.NewError(domain.KindValidation, op, "failed to prepare book cover image", err)
	}

	parts := []*genai.Part{{Text: prompt.AnalysisPrompt}, facePart, coverPart}
	resp, err := c.executeRequest(ctx, c.textModel, parts, genai.ModalityText, nil)
	if err != nil {
		slog.ErrorContext(ctx, "画像解析に失敗しました", "model", c.textModel, "error", err)
		return fmt.Sprintf("Error analyzing images: %v", err), domain.NewError(domain.KindTransport, op, "error analyzing images", err)
	}

	text, err := c.parseText(resp)
	if err != nil {
		return UnableToAnalyze, domain.NewError(domain.KindNoContent, op, "no text in response", err)
	}
	return text, nil
}

// ValidateImages は生成前の事前チェックです。最小解像度と、JPEG 再エンコード時の
// 転送サイズ見積もりを確認します。リモート呼び出しは行いません。
func (c *MergeClient) ValidateImages(face, bookCover image.Image) domain.ValidationOutcome {
	checks := []struct {
		role domain.Role
		img  image.Image
	}{
		{domain.RoleFace, face},
		{domain.RoleBookCover, bookCover},
	}

	for _, chk := range checks {
		if chk.img == nil {
			return domain.Reject(fmt.Sprintf("missing image for role %s", chk.role))
		}
		b := chk.img.Bounds()
		minDim := chk.role.MinDimension()
		if b.Dx() < minDim || b.Dy() < minDim {
			return domain.Reject(fmt.Sprintf("%s image is too small (minimum %dx%d pixels)", chk.role.Label(), minDim, minDim))
		}
	}

	for _, chk := range checks {
		data, err := imgutil.EncodeJPEG(chk.img, sizeEstimateQuality)
		if err != nil {
			return domain.Reject(fmt.Sprintf("Error validating images: %v", err))
		}
		if len(data) > validation.MaxUploadBytes {
			return domain.Reject(fmt.Sprintf("%s image file is too large (max %dMB)", chk.role.Label(), validation.MaxUploadBytes/(1024*1024)))
		}
	}

	return domain.Accept("Images are suitable for merging")
}

// TestConnection は単色の検査画像について質問し、テキストが返るかで疎通を判定します。
func (c *MergeClient) TestConnection(ctx context.Context) (domain.ConnectionResult, error) {
	const op = "test-connection"

	probe := imgutil.NewSolidImage(probeImageSize, probeImageSize, color.RGBA{R: 255, A: 255})
	data, err := imgutil.EncodeJPEG(probe, c.jpegQuality)
	if err != nil {
		return domain.ConnectionResult{Message: fmt.Sprintf("API connection failed: %v", err)},
			domain.NewError(domain.KindTransport, op, "failed to build probe image", err)
	}
	probePart, err := c.toPart(data)
	if err != nil {
		return domain.ConnectionResult{Message: fmt.Sprintf("API connection failed: %v", err)},
			domain.NewError(domain.KindTransport, op, "failed to build probe image", err)
	}

	parts := []*genai.Part{{Text: prompt.ConnectionProbePrompt}, probePart}
	resp, err := c.executeRequest(ctx, c.textModel, parts, genai.ModalityText, nil)
	if err != nil {
		slog.WarnContext(ctx, "API疎通確認に失敗しました", "model", c.textModel, "error", err)
		return domain.ConnectionResult{Message: fmt.Sprintf("API connection failed: %v", err)},
			domain.NewError(domain.KindTransport, op, "API connection failed", err)
	}

	if _, err := c.parseText(resp); err != nil {
		return domain.ConnectionResult{Message: "API connection failed - no response"},
			domain.NewError(domain.KindNoContent, op, "no response", err)
	}

	return domain.ConnectionResult{Connected: true, Message: "API connection successful"}, nil
}

func requireUploads(op string, face, bookCover *domain.Upload) error {
	if face == nil || face.Image == nil {
		return domain.NewError(domain.KindValidation, op, fmt.Sprintf("missing image for role %s", domain.RoleFace), nil)
	}
	if bookCover == nil || bookCover.Image == nil {
		return domain.NewError(domain.KindValidation, op, fmt.Sprintf("missing image for role %s", domain.RoleBookCover), nil)
	}
	return nil
}
