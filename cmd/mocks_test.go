package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/shouni/gemini-bookcover-kit/internal/builder"
	"github.com/shouni/gemini-bookcover-kit/internal/config"
	"github.com/shouni/gemini-bookcover-kit/internal/input"
	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
	"github.com/shouni/gemini-bookcover-kit/pkg/generator"
	"github.com/shouni/gemini-bookcover-kit/pkg/imgutil"
	"github.com/shouni/gemini-bookcover-kit/pkg/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// memStore はローカルパス / gs:// をメモリ上で扱う Reader / Writer です。
type memStore struct {
	files        map[string][]byte
	contentTypes map[string]string
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (m *memStore) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	data, ok := m.files[uri]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", uri)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) Write(ctx context.Context, uri string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.files[uri] = data
	m.contentTypes[uri] = contentType
	return nil
}

func (m *memStore) putPNG(t *testing.T, uri string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imgutil.NewSolidImage(w, h, color.RGBA{R: 200, G: 160, B: 120, A: 255})))
	m.files[uri] = buf.Bytes()
}

// mockMerger は呼び出し内容を記録する MergeService です。
type mockMerger struct {
	mergeCalls  int
	mergeReq    *domain.MergeRequest
	mergeErr    error
	analyzeText string
	analyzeErr  error
	conn        domain.ConnectionResult
	connErr     error
}

func (m *mockMerger) Merge(ctx context.Context, req *domain.MergeRequest) (*domain.MergeResult, error) {
	m.mergeCalls++
	m.mergeReq = req
	if m.mergeErr != nil {
		return nil, m.mergeErr
	}
	img := imgutil.NewSolidImage(64, 96, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	data, err := imgutil.EncodePNG(img)
	if err != nil {
		return nil, err
	}
	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	}
	return &domain.MergeResult{Image: img, PNG: data, MimeType: "image/png", UsedSeed: seed}, nil
}

func (m *mockMerger) Analyze(ctx context.Context, face, bookCover *domain.Upload) (string, error) {
	return m.analyzeText, m.analyzeErr
}

func (m *mockMerger) ValidateImages(face, bookCover image.Image) domain.ValidationOutcome {
	return domain.Accept("Images are suitable for merging")
}

func (m *mockMerger) TestConnection(ctx context.Context) (domain.ConnectionResult, error) {
	return m.conn, m.connErr
}

// offlineGenerator はリモート呼び出しを常に失敗させる ContentGenerator です。
type offlineGenerator struct{}

func (offlineGenerator) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return nil, errors.New("offline")
}

func newRealMerger(t *testing.T) generator.MergeService {
	t.Helper()
	mc, err := generator.NewMergeClient(offlineGenerator{}, generator.Options{})
	require.NoError(t, err)
	return mc
}

// useTestApp は buildApp をメモリ上の依存関係に差し替えます。
func useTestApp(t *testing.T, store *memStore, merger generator.MergeService) *builder.AppContext {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")

	app := &builder.AppContext{
		Config: &config.Config{
			GeminiAPIKey: "test-key",
			ImageModel:   generator.DefaultImageModel,
			TextModel:    generator.DefaultTextModel,
			MaxImageSize: imgutil.DefaultMaxSize,
			HTTPTimeout:  config.DefaultHTTPTimeout,
			OutputDir:    "out",
		},
		Reader: store,
		Writer: store,
		Loader: input.NewLoader(nil, store),
		Gate:   validation.NewGate(validation.DefaultLimits()),
		Merger: merger,
	}

	orig := buildApp
	buildApp = func(*cobra.Command, bool) (*builder.AppContext, error) { return app, nil }
	t.Cleanup(func() { buildApp = orig })
	return app
}

// runRoot はフラグを初期値に戻してからコマンドを実行し、標準出力の内容を返します。
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}
