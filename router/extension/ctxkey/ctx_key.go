// Package ctxkey context.WithValueで使用するキー
package ctxkey

// CtxKey context.WithValueで使用するキーの型
type CtxKey int

const (
	// UserID リクエストユーザーUUID (uuid.UUID)
	UserID CtxKey = iota
	// User リクエストユーザー (*model.User)
	User
)
