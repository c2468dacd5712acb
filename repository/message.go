package repository

import (
	"github.com/gofrs/uuid"

	"github.com/stadtwache/stadtwache/model"
)

// CreateMessageArgs メッセージ作成引数
type CreateMessageArgs struct {
	Content     string
	SenderID    uuid.UUID
	SenderName  string
	RecipientID uuid.UUID
	Channel     string
	MessageType string
}

// MessageRepository メッセージリポジトリ
type MessageRepository interface {
	// CreateMessage メッセージを作成し、MessageCreatedイベントを発行します
	CreateMessage(args CreateMessageArgs) (*model.Message, error)
	// GetMessage 指定したIDのメッセージを取得します
	//
	// 存在しなかった場合、ErrNotFoundを返します。
	GetMessage(id uuid.UUID) (*model.Message, error)
	// GetMessages 指定したチャンネルの直近limit件のメッセージを新しい順で取得します
	GetMessages(channel string, limit int) ([]*model.Message, error)
	// DeleteMessage メッセージを削除し、MessageDeletedイベントを発行します
	//
	// 存在しないメッセージの場合、ErrNotFoundを返します。
	DeleteMessage(id uuid.UUID) error
	// CountMessages メッセージ数を取得します
	CountMessages() (int64, error)
}
