package gorm

import (
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
)

// Tables マイグレーション対象の全テーブル
var Tables = []interface{}{
	&model.User{},
	&model.Incident{},
	&model.Message{},
	&model.Report{},
	&model.LocationLog{},
}

// Repository リポジトリ実装
type Repository struct {
	db     *gorm.DB
	hub    *hub.Hub
	logger *zap.Logger
}

// NewGormRepository リポジトリ実装を初期化して生成します
func NewGormRepository(db *gorm.DB, h *hub.Hub, logger *zap.Logger) (repository.Repository, error) {
	if err := db.AutoMigrate(Tables...); err != nil {
		return nil, err
	}
	return &Repository{
		db:     db,
		hub:    h,
		logger: logger.Named("repository"),
	}, nil
}

// Wipe implements Repository interface.
func (repo *Repository) Wipe() (int64, error) {
	var deleted int64
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range Tables {
			res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table)
			if res.Error != nil {
				return res.Error
			}
			deleted += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
