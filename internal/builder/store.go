package builder

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// remoteStore はローカルパスと gs:// を go-remote-io の Reader / Writer で扱います。
// GCS クライアントファクトリは最初の入出力で初期化するため、
// ファイルに触れないコマンド（ping など）は GCP の認証情報を必要としません。
type remoteStore struct {
	once   sync.Once
	reader remoteio.InputReader
	writer remoteio.OutputWriter
	err    error
}

func newRemoteStore() *remoteStore {
	return &remoteStore{}
}

func (s *remoteStore) init(ctx context.Context) error {
	s.once.Do(func() {
		factory, err := gcsfactory.NewGCSClientFactory(ctx)
		if err != nil {
			s.err = fmt.Errorf("failed to create GCS client factory: %w", err)
			return
		}
		if s.reader, err = factory.NewInputReader(); err != nil {
			s.err = fmt.Errorf("failed to create input reader: %w", err)
			return
		}
		if s.writer, err = factory.NewOutputWriter(); err != nil {
			s.err = fmt.Errorf("failed to create output writer: %w", err)
		}
	})
	return s.err
}

// Open はローカルパスまたは gs:// URI を開きます。
func (s *remoteStore) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s.reader.Open(ctx, uri)
}

// Write はローカルパスまたは gs:// URI へ書き込みます。
func (s *remoteStore) Write(ctx context.Context, uri string, r io.Reader, contentType string) error {
	if err := s.init(ctx); err != nil {
		return err
	}
	return s.writer.Write(ctx, uri, r, contentType)
}
