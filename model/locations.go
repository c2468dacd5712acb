package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// LocationLog 位置情報の記録
type LocationLog struct {
	ID        uuid.UUID   `gorm:"type:char(36);not null;primaryKey" json:"id"`
	UserID    uuid.UUID   `gorm:"type:char(36);not null;index"      json:"user_id"`
	Location  Coordinates `gorm:"type:text"                         json:"location"`
	CreatedAt time.Time   `gorm:"precision:6;index"                 json:"timestamp"`
}

// TableName LocationLogのテーブル名
func (*LocationLog) TableName() string {
	return "location_logs"
}
