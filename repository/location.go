package repository

import (
	"time"

	"github.com/gofrs/uuid"

	"github.com/stadtwache/stadtwache/model"
)

// LocationRepository 位置情報リポジトリ
type LocationRepository interface {
	// RecordLocation 位置情報を記録し、LocationUpdatedイベントを発行します
	RecordLocation(userID uuid.UUID, loc model.Coordinates) (*model.LocationLog, error)
	// GetLiveLocations 指定した期間内の各ユーザーの最新の位置情報を取得します
	GetLiveLocations(since time.Time) ([]*model.LocationLog, error)
}
