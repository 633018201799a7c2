// Package ordered は1つのドキュメント内に保存する新しい順のネストリスト
// （職歴・いいね・コメント）を操作するヘルパーを提供します。
package ordered

import (
	"slices"

	"github.com/samber/lo"
)

// Prepend はvを先頭に置いたリストを返します。入力スライスは変更しません。
func Prepend[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}

// IndexOf はpredに一致する最初の要素のインデックスを返します。なければ-1です。
func IndexOf[T any](list []T, pred func(T) bool) int {
	_, idx, ok := lo.FindIndexOf(list, pred)
	if !ok {
		return -1
	}
	return idx
}

// Contains はpredに一致する要素があるかを返します。
func Contains[T any](list []T, pred func(T) bool) bool {
	return lo.ContainsBy(list, pred)
}

// RemoveAt はidxの要素を除いたリストを返します。残りの要素の順序は保ちます。
// idxが範囲外の場合は元のリストのコピーとfalseを返します。
func RemoveAt[T any](list []T, idx int) ([]T, bool) {
	if idx < 0 || idx >= len(list) {
		return slices.Clone(list), false
	}
	out := slices.Clone(list)
	return slices.Delete(out, idx, idx+1), true
}

// RemoveFirst はpredに一致する最初の要素を取り除きます。
func RemoveFirst[T any](list []T, pred func(T) bool) ([]T, bool) {
	return RemoveAt(list, IndexOf(list, pred))
}
