package generator

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
	"github.com/shouni/gemini-bookcover-kit/pkg/imgutil"
	"google.golang.org/genai"
)

// --- Mocks ---

type generateCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

// mockAIClient は ContentGenerator のテスト用モックです。
type mockAIClient struct {
	calls        []generateCall
	generateFunc func(model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls = append(m.calls, generateCall{model: model, contents: contents, config: config})
	if m.generateFunc != nil {
		return m.generateFunc(model, contents, config)
	}
	return &genai.GenerateContentResponse{}, nil
}

func (m *mockAIClient) lastParts() []*genai.Part {
	if len(m.calls) == 0 || len(m.calls[len(m.calls)-1].contents) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1].contents[0].Parts
}

type mockCache struct {
	data map[string]any
	sets int
}

func (m *mockCache) Get(key string) (any, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) {
	if m.data == nil {
		m.data = make(map[string]any)
	}
	m.sets++
	m.data[key] = value
}

// --- Helpers ---

func imageResponse(t *testing.T, w, h int) *genai.GenerateContentResponse {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, imgutil.NewSolidImage(w, h, color.RGBA{10, 200, 10, 255})); err != nil {
		t.Fatalf("failed to encode response image: %v", err)
	}
	return partsResponse(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: buf.Bytes()}})
}

func textResponse(text string) *genai.GenerateContentResponse {
	return partsResponse(&genai.Part{Text: text})
}

func partsResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: genai.RoleModel, Parts: parts},
		}},
	}
}

func newUpload(t *testing.T, role domain.Role, w, h int) *domain.Upload {
	t.Helper()
	img := imgutil.NewSolidImage(w, h, color.RGBA{180, 120, 90, 255})
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode upload: %v", err)
	}
	return &domain.Upload{Role: role, Data: buf.Bytes(), Format: "png", Image: img}
}

func newClient(t *testing.T, ai ContentGenerator, opts Options) *MergeClient {
	t.Helper()
	c, err := NewMergeClient(ai, opts)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func decodePart(t *testing.T, part *genai.Part) image.Image {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(part.InlineData.Data))
	if err != nil {
		t.Fatalf("failed to decode part: %v", err)
	}
	return img
}
