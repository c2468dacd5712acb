package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// UserRole ユーザーの役割
type UserRole string

const (
	// RoleAdmin 管理者 (Eigentümer)
	RoleAdmin UserRole = "admin"
	// RolePolice 隊員 (Stadtwache)
	RolePolice UserRole = "police"
	// RoleCommunity 市民メンバー
	RoleCommunity UserRole = "community"
	// RoleTrainee 研修生 (Praktikant)
	RoleTrainee UserRole = "trainee"
)

// Valid 定義済みの役割かどうか
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RolePolice, RoleCommunity, RoleTrainee:
		return true
	}
	return false
}

// DefaultWorkStatus 勤務状態の初期値
const DefaultWorkStatus = "Im Dienst"

// User ユーザーの構造体
type User struct {
	ID            uuid.UUID `gorm:"type:char(36);not null;primaryKey" json:"id"`
	Email         string    `gorm:"type:varchar(255);not null;unique" json:"email"`
	Name          string    `gorm:"type:varchar(64);not null"         json:"username"`
	Password      string    `gorm:"type:char(60);not null"            json:"-"`
	Role          UserRole  `gorm:"type:varchar(16);not null"         json:"role"`
	BadgeNumber   string    `gorm:"type:varchar(32)"                  json:"badge_number,omitempty"`
	Department    string    `gorm:"type:varchar(64)"                  json:"department,omitempty"`
	Phone         string    `gorm:"type:varchar(32)"                  json:"phone,omitempty"`
	ServiceNumber string    `gorm:"type:varchar(32)"                  json:"service_number,omitempty"`
	Rank          string    `gorm:"type:varchar(32)"                  json:"rank,omitempty"`
	// WorkStatus 勤務状態 ("Im Dienst", "Pause", "Einsatz", "Streife", "Nicht verfügbar")
	WorkStatus string    `gorm:"type:varchar(32);not null;default:'Im Dienst'" json:"status"`
	IsActive   bool      `gorm:"not null;default:true"             json:"is_active"`
	CreatedAt  time.Time `gorm:"precision:6"                       json:"created_at"`
	UpdatedAt  time.Time `gorm:"precision:6"                       json:"updated_at"`
}

// TableName Userのテーブル名
func (*User) TableName() string {
	return "users"
}

// IsAdmin 管理者かどうか
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageIncidents 事案の割り当て・更新・完了が可能かどうか
func (u *User) CanManageIncidents() bool {
	return u.Role == RoleAdmin || u.Role == RolePolice
}
