package repository

import (
	"github.com/gofrs/uuid"

	"github.com/stadtwache/stadtwache/model"
)

// CreateUserArgs ユーザー作成引数
type CreateUserArgs struct {
	Email         string
	Name          string
	Password      string
	Role          model.UserRole
	BadgeNumber   string
	Department    string
	Phone         string
	ServiceNumber string
	Rank          string
}

// UpdateUserArgs ユーザー情報更新引数
type UpdateUserArgs struct {
	Name          *string
	Phone         *string
	ServiceNumber *string
	Rank          *string
	Department    *string
	WorkStatus    *string
}

// UserRepository ユーザーリポジトリ
type UserRepository interface {
	// CreateUser ユーザーを作成します
	//
	// 成功した場合、ユーザーとnilを返します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrAlreadyExistsを返します。
	// DBによるエラーを返すことがあります。
	CreateUser(args CreateUserArgs) (*model.User, error)
	// GetUser 指定したIDのユーザーを取得します
	//
	// 存在しなかった場合、ErrNotFoundを返します。
	GetUser(id uuid.UUID) (*model.User, error)
	// GetUserByEmail 指定したメールアドレスのユーザーを取得します
	//
	// 存在しなかった場合、ErrNotFoundを返します。
	GetUserByEmail(email string) (*model.User, error)
	// GetUsers 全ユーザーを取得します
	GetUsers(activeOnly bool) ([]*model.User, error)
	// UpdateUser 指定したユーザーの情報を更新します
	//
	// 存在しないユーザーの場合、ErrNotFoundを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	UpdateUser(id uuid.UUID, args UpdateUserArgs) (*model.User, error)
	// DeleteUser 指定したユーザーを削除します
	//
	// 存在しないユーザーの場合、ErrNotFoundを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	DeleteUser(id uuid.UUID) error
	// CountUsers ユーザー数を取得します
	CountUsers() (int64, error)
}
