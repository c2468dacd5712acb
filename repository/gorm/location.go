package gorm

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"github.com/samber/lo"

	"github.com/stadtwache/stadtwache/event"
	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
)

// RecordLocation implements LocationRepository interface.
func (repo *Repository) RecordLocation(userID uuid.UUID, loc model.Coordinates) (*model.LocationLog, error) {
	if userID == uuid.Nil {
		return nil, repository.ErrNilID
	}

	l := &model.LocationLog{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   userID,
		Location: loc,
	}
	if err := repo.db.Create(l).Error; err != nil {
		return nil, err
	}

	repo.hub.Publish(hub.Message{
		Name: event.LocationUpdated,
		Fields: hub.Fields{
			"location": l,
		},
	})
	return l, nil
}

// GetLiveLocations implements LocationRepository interface.
func (repo *Repository) GetLiveLocations(since time.Time) ([]*model.LocationLog, error) {
	logs := make([]*model.LocationLog, 0)
	err := repo.db.
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	// ユーザーごとに最新の1件のみを残す
	return lo.UniqBy(logs, func(l *model.LocationLog) uuid.UUID { return l.UserID }), nil
}
