package gorm

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
)

// CreateReport implements ReportRepository interface.
func (repo *Repository) CreateReport(args repository.CreateReportArgs) (*model.Report, error) {
	if args.AuthorID == uuid.Nil {
		return nil, repository.ErrNilID
	}

	r := &model.Report{
		ID:         uuid.Must(uuid.NewV4()),
		Title:      args.Title,
		Content:    args.Content,
		AuthorID:   args.AuthorID,
		AuthorName: args.AuthorName,
		ShiftDate:  args.ShiftDate,
		Status:     model.ReportStatusSubmitted,
	}
	if err := repo.db.Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetReport implements ReportRepository interface.
func (repo *Repository) GetReport(id uuid.UUID) (*model.Report, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNotFound
	}
	var r model.Report
	if err := repo.db.First(&r, &model.Report{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return &r, nil
}

// GetReports implements ReportRepository interface.
func (repo *Repository) GetReports(authorID uuid.UUID) ([]*model.Report, error) {
	reports := make([]*model.Report, 0)
	tx := repo.db.Order("created_at DESC")
	if authorID != uuid.Nil {
		tx = tx.Where("author_id = ?", authorID)
	}
	return reports, tx.Find(&reports).Error
}

// UpdateReport implements ReportRepository interface.
func (repo *Repository) UpdateReport(id uuid.UUID, args repository.UpdateReportArgs) (*model.Report, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNilID
	}

	var r model.Report
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&r, &model.Report{ID: id}).Error; err != nil {
			return convertError(err)
		}

		entry := model.ReportEdit{
			EditedBy:     args.EditorID,
			EditedByName: args.EditorName,
			EditedAt:     time.Now(),
			Changes: map[string]model.Change{
				"title":      {Old: r.Title, New: args.Title},
				"content":    {Old: r.Content, New: args.Content},
				"shift_date": {Old: r.ShiftDate, New: args.ShiftDate},
			},
		}
		history := append(r.EditHistory, entry)

		changes := map[string]interface{}{
			"title":               args.Title,
			"content":             args.Content,
			"shift_date":          args.ShiftDate,
			"last_edited_by":      args.EditorID,
			"last_edited_by_name": args.EditorName,
			"edit_history":        history,
		}
		if err := tx.Model(&r).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&r, &model.Report{ID: id}).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}
