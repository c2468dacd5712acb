package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// DefaultChannel 既定のチャンネル名
const DefaultChannel = "general"

const (
	// MessageTypeText テキストメッセージ
	MessageTypeText = "text"
	// MessageTypeLocation 位置情報メッセージ
	MessageTypeLocation = "location"
	// MessageTypeImage 画像メッセージ
	MessageTypeImage = "image"
)

// Message チャンネルメッセージの構造体
type Message struct {
	ID       uuid.UUID `gorm:"type:char(36);not null;primaryKey" json:"id"`
	Content  string    `gorm:"type:text;not null"                json:"content"`
	SenderID uuid.UUID `gorm:"type:char(36);not null;index"      json:"sender_id"`
	// SenderName 送信時点のユーザー名のスナップショット
	SenderName  string    `gorm:"type:varchar(64);not null"    json:"sender_name"`
	RecipientID uuid.UUID `gorm:"type:char(36)"                json:"recipient_id,omitempty"`
	Channel     string    `gorm:"type:varchar(64);not null;index;default:'general'" json:"channel"`
	MessageType string    `gorm:"type:varchar(16);not null;default:'text'" json:"message_type"`
	CreatedAt   time.Time `gorm:"precision:6;index"            json:"timestamp"`
}

// TableName Messageのテーブル名
func (*Message) TableName() string {
	return "messages"
}
