// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は POST /api/users のリクエストボディを表します。
// msgタグはバリデーション失敗時にフィールドごとに返すメッセージです。
// パスワードの72バイト上限はusecase側で検証します。
type RegisterReq struct {
	Name     string `json:"name" binding:"required" msg:"Name is required"`
	Email    string `json:"email" binding:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" binding:"required,min=6" msg:"Please enter a password with 6 or more characters"`
}
