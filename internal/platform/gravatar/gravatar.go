// Package gravatar はメールアドレスからアバターURLを生成します。
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

const baseURL = "//www.gravatar.com/avatar/"

// URL はemailに対するプロトコル相対のgravatar URLを返します。
// サイズ200px・レーティングpg・未登録時は"mystery man"画像です。
// 同じメールアドレスからは常に同じURLが生成されます。
func URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("s", "200")
	q.Set("r", "pg")
	q.Set("d", "mm")
	return baseURL + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}
