package dto

// LoginReq は POST /api/auth のリクエストボディを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" binding:"required" msg:"Password is required"`
}
