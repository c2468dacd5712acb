package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofrs/uuid"
)

const (
	// ReportStatusDraft 下書き
	ReportStatusDraft = "draft"
	// ReportStatusSubmitted 提出済み
	ReportStatusSubmitted = "submitted"
	// ReportStatusReviewed 確認済み
	ReportStatusReviewed = "reviewed"
	// ReportStatusArchived 事案アーカイブ
	ReportStatusArchived = "archived"
)

// ReportEdit 報告書の編集履歴のエントリ
type ReportEdit struct {
	EditedBy     uuid.UUID         `json:"edited_by"`
	EditedByName string            `json:"edited_by_name"`
	EditedAt     time.Time         `json:"edited_at"`
	Changes      map[string]Change `json:"changes"`
}

// Change 編集前後の値
type Change struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// ReportEditHistory JSONとして格納する編集履歴
type ReportEditHistory []ReportEdit

// Value database/sql/driver.Valuer 実装
func (h ReportEditHistory) Value() (driver.Value, error) {
	if h == nil {
		h = ReportEditHistory{}
	}
	return json.Marshal(h)
}

// Scan database/sql.Scanner 実装
func (h *ReportEditHistory) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(s), h)
	case []byte:
		return json.Unmarshal(s, h)
	default:
		return errors.New("failed to scan ReportEditHistory")
	}
}

// Report 勤務報告書の構造体
type Report struct {
	ID         uuid.UUID `gorm:"type:char(36);not null;primaryKey" json:"id"`
	Title      string    `gorm:"type:varchar(255);not null"        json:"title"`
	Content    string    `gorm:"type:text;not null"                json:"content"`
	AuthorID   uuid.UUID `gorm:"type:char(36);not null;index"      json:"author_id"`
	AuthorName string    `gorm:"type:varchar(64);not null"         json:"author_name"`
	ShiftDate  string    `gorm:"type:varchar(10);not null"         json:"shift_date"`
	Status     string    `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`
	// IncidentID 完了した事案のアーカイブである場合、その事案ID
	IncidentID       uuid.UUID         `gorm:"type:char(36)"        json:"incident_id,omitempty"`
	LastEditedBy     uuid.UUID         `gorm:"type:char(36)"        json:"last_edited_by,omitempty"`
	LastEditedByName string            `gorm:"type:varchar(64)"     json:"last_edited_by_name,omitempty"`
	EditHistory      ReportEditHistory `gorm:"type:text"            json:"edit_history"`
	CreatedAt        time.Time         `gorm:"precision:6;index"    json:"created_at"`
	UpdatedAt        time.Time         `gorm:"precision:6"          json:"updated_at"`
}

// TableName Reportのテーブル名
func (*Report) TableName() string {
	return "reports"
}
