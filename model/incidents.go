package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofrs/uuid"
)

const (
	// IncidentPriorityHigh 優先度: 高
	IncidentPriorityHigh = "high"
	// IncidentPriorityMedium 優先度: 中
	IncidentPriorityMedium = "medium"
	// IncidentPriorityLow 優先度: 低
	IncidentPriorityLow = "low"

	// IncidentStatusOpen 未対応
	IncidentStatusOpen = "open"
	// IncidentStatusInProgress 対応中
	IncidentStatusInProgress = "in_progress"
	// IncidentStatusClosed 完了
	IncidentStatusClosed = "closed"
)

// ValidIncidentPriority 定義済みの優先度かどうか
func ValidIncidentPriority(p string) bool {
	return p == IncidentPriorityHigh || p == IncidentPriorityMedium || p == IncidentPriorityLow
}

// ValidIncidentStatus 定義済みのステータスかどうか
func ValidIncidentStatus(s string) bool {
	return s == IncidentStatusOpen || s == IncidentStatusInProgress || s == IncidentStatusClosed
}

// Coordinates 緯度経度
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Value database/sql/driver.Valuer 実装
func (c Coordinates) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan database/sql.Scanner 実装
func (c *Coordinates) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(s), c)
	case []byte:
		return json.Unmarshal(s, c)
	default:
		return errors.New("failed to scan Coordinates")
	}
}

// StringArray JSON配列として格納する文字列リスト
type StringArray []string

// Value database/sql/driver.Valuer 実装
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		a = StringArray{}
	}
	return json.Marshal(a)
}

// Scan database/sql.Scanner 実装
func (a *StringArray) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(s), a)
	case []byte:
		return json.Unmarshal(s, a)
	default:
		return errors.New("failed to scan StringArray")
	}
}

// Incident 事案の構造体
type Incident struct {
	ID             uuid.UUID   `gorm:"type:char(36);not null;primaryKey" json:"id"`
	Title          string      `gorm:"type:varchar(255);not null"        json:"title"`
	Description    string      `gorm:"type:text;not null"                json:"description"`
	Priority       string      `gorm:"type:varchar(16);not null"         json:"priority"`
	Status         string      `gorm:"type:varchar(16);not null;default:'open'" json:"status"`
	Location       Coordinates `gorm:"type:text"                         json:"location"`
	Address        string      `gorm:"type:varchar(255)"                 json:"address"`
	ReportedBy     uuid.UUID   `gorm:"type:char(36);not null;index"      json:"reported_by"`
	AssignedTo     uuid.UUID   `gorm:"type:char(36)"                     json:"assigned_to,omitempty"`
	AssignedToName string      `gorm:"type:varchar(64)"                  json:"assigned_to_name,omitempty"`
	Images         StringArray `gorm:"type:text"                         json:"images"`
	CreatedAt      time.Time   `gorm:"precision:6;index"                 json:"created_at"`
	UpdatedAt      time.Time   `gorm:"precision:6"                       json:"updated_at"`
}

// TableName Incidentのテーブル名
func (*Incident) TableName() string {
	return "incidents"
}
