package input

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"strings"

	"github.com/shouni/gemini-bookcover-kit/pkg/validation"
)

// HTTPClient は、URLからデータを取得するためのインターフェースです。
// httpkit.Client がこれを満たします。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Reader はローカルパスや gs:// を開くためのインターフェースです。
// remoteio.InputReader がこれを満たします。
type Reader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Writer は生成結果をローカルパスや gs:// に保存するためのインターフェースです。
// remoteio.OutputWriter がこれを満たします。
type Writer interface {
	Write(ctx context.Context, uri string, r io.Reader, contentType string) error
}

// lookupIP はテストで差し替えられるよう変数にしています。
var lookupIP = net.LookupIP

// Loader はローカルパス・gs:// または http(s) URL から画像のバイト列を読み込みます。
type Loader struct {
	httpClient HTTPClient
	reader     Reader
}

// NewLoader は Loader を作成します。httpClient が nil の場合は http(s) 入力を受け付けません。
func NewLoader(httpClient HTTPClient, reader Reader) *Loader {
	return &Loader{httpClient: httpClient, reader: reader}
}

// Load は source を読み込みます。空文字の場合は nil を返し、存在チェックは呼び出し側に任せます。
func (l *Loader) Load(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, nil
	}

	if isRemote(source) {
		return l.fetch(ctx, source)
	}

	if l.reader == nil {
		return nil, fmt.Errorf("ファイル入力は無効化されています: %s", source)
	}
	rc, err := l.reader.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("画像ファイルの読み込みに失敗しました: %w", err)
	}
	defer rc.Close()

	// 上限を1バイト超えるところまで読めば、サイズ超過の判定はゲートに任せられる
	data, err := io.ReadAll(io.LimitReader(rc, validation.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("画像ファイルの読み込みに失敗しました: %w", err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if l.httpClient == nil {
		return nil, fmt.Errorf("URL入力は無効化されています: %s", source)
	}
	if safe, err := IsSafeURL(source); err != nil || !safe {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	slog.InfoContext(ctx, "画像をダウンロードしています", "url", source)
	data, err := l.httpClient.FetchBytes(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("画像のダウンロードに失敗しました: %w", err)
	}
	return data, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IsSafeURL は SSRF 対策として URL を検証します。
// 名前解決されたすべての IP アドレスに対してプライベート IP チェックを行います。
func IsSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP

	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolvedIPs, err := lookupIP(host)
		if err != nil {
			return false, fmt.Errorf("ホスト '%s' の名前解決に失敗しました: %w", host, err)
		}
		ips = resolvedIPs
	}

	if len(ips) == 0 {
		return false, fmt.Errorf("IPが見つかりません")
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
