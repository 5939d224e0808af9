package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// seedToPtrInt32 は domain の *int64 を SDK 用の *int32 に変換します。
// int32 の範囲を超える値は上位ビットが切り捨てられます。
func seedToPtrInt32(s *int64) *int32 {
	if s == nil {
		return nil
	}
	v := int32(*s)
	return &v
}

// dereferenceSeed は *int64 を安全に int64 に変換します。
// nil の場合はデフォルト値（0）を返します。
func dereferenceSeed(s *int64) int64 {
	if s == nil {
		return 0
	}
	return *s
}

// preparedCacheKey は元データと整形条件からキャッシュキーを作ります。
func preparedCacheKey(data []byte, maxSize, quality int) string {
	sum := sha256.Sum256(data)
	return cacheKeyPrepared + hex.EncodeToString(sum[:]) + ":" + strconv.Itoa(maxSize) + ":" + strconv.Itoa(quality)
}
