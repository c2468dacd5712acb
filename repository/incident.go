package repository

import (
	"github.com/gofrs/uuid"

	"github.com/stadtwache/stadtwache/model"
)

// CreateIncidentArgs 事案作成引数
type CreateIncidentArgs struct {
	Title       string
	Description string
	Priority    string
	Location    model.Coordinates
	Address     string
	ReportedBy  uuid.UUID
	Images      []string
}

// UpdateIncidentArgs 事案更新引数
type UpdateIncidentArgs struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	Address     *string
}

// AssignIncidentArgs 事案割り当て引数
type AssignIncidentArgs struct {
	AssignedTo     uuid.UUID
	AssignedToName string
}

// IncidentRepository 事案リポジトリ
type IncidentRepository interface {
	// CreateIncident 事案を作成し、IncidentCreatedイベントを発行します
	CreateIncident(args CreateIncidentArgs) (*model.Incident, error)
	// GetIncident 指定したIDの事案を取得します
	//
	// 存在しなかった場合、ErrNotFoundを返します。
	GetIncident(id uuid.UUID) (*model.Incident, error)
	// GetIncidents 全事案を作成日時の降順で取得します
	GetIncidents() ([]*model.Incident, error)
	// UpdateIncident 事案を更新し、IncidentUpdatedイベントを発行します
	//
	// 存在しない事案の場合、ErrNotFoundを返します。
	UpdateIncident(id uuid.UUID, args UpdateIncidentArgs) (*model.Incident, error)
	// AssignIncident 事案を担当者に割り当て、IncidentAssignedイベントを発行します
	//
	// 状態はin_progressに遷移します。存在しない事案の場合、ErrNotFoundを返します。
	AssignIncident(id uuid.UUID, args AssignIncidentArgs) (*model.Incident, error)
	// CompleteIncident 事案をアーカイブ報告書に変換して削除し、IncidentCompletedイベントを発行します
	//
	// 成功した場合、作成されたアーカイブ報告書を返します。
	// 存在しない事案の場合、ErrNotFoundを返します。
	CompleteIncident(id uuid.UUID, completedBy *model.User) (*model.Report, error)
	// DeleteIncident 事案を削除します
	//
	// 存在しない事案の場合、ErrNotFoundを返します。
	DeleteIncident(id uuid.UUID) error
	// CountIncidents 事案数を取得します (statusが空文字列の場合は全件)
	CountIncidents(status string) (int64, error)
}
