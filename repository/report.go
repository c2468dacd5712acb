package repository

import (
	"github.com/gofrs/uuid"

	"github.com/stadtwache/stadtwache/model"
)

// CreateReportArgs 報告書作成引数
type CreateReportArgs struct {
	Title      string
	Content    string
	ShiftDate  string
	AuthorID   uuid.UUID
	AuthorName string
}

// UpdateReportArgs 報告書更新引数
type UpdateReportArgs struct {
	Title      string
	Content    string
	ShiftDate  string
	EditorID   uuid.UUID
	EditorName string
}

// ReportRepository 勤務報告書リポジトリ
type ReportRepository interface {
	// CreateReport 報告書を提出済み状態で作成します
	CreateReport(args CreateReportArgs) (*model.Report, error)
	// GetReport 指定したIDの報告書を取得します
	//
	// 存在しなかった場合、ErrNotFoundを返します。
	GetReport(id uuid.UUID) (*model.Report, error)
	// GetReports 報告書を作成日時の降順で取得します
	//
	// authorIDがuuid.Nilの場合は全件を返します。
	GetReports(authorID uuid.UUID) ([]*model.Report, error)
	// UpdateReport 報告書を更新し、編集履歴を追記します
	//
	// 存在しない報告書の場合、ErrNotFoundを返します。
	UpdateReport(id uuid.UUID, args UpdateReportArgs) (*model.Report, error)
}
