package domain

import (
	"errors"
	"fmt"
)

// Kind はエラーの分類です。呼び出し側はメッセージ文字列ではなく Kind で分岐します。
type Kind int

const (
	// KindUnknown は domain.Error を含まないエラーに対する既定値です。
	KindUnknown Kind = iota
	// KindConfiguration は API キー未設定などの設定エラー。通信前に発生します。
	KindConfiguration
	// KindValidation は入力画像がフォーマット・サイズ・解像度の条件を満たさない場合。
	KindValidation
	// KindTransport は通信失敗やリモート側のエラー。
	KindTransport
	// KindNoContent は応答は得られたが期待したパーツ（画像 or テキスト）が無い場合。
	KindNoContent
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindNoContent:
		return "no_content"
	default:
		return "unknown"
	}
}

// Error は Kind 付きのエラーです。
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// NewError は Kind 付きエラーを作成します。
func NewError(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf は err の連鎖から最初に見つかった Kind を返します。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind は err が指定の Kind かどうかを返します。
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
