package gorm

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"gorm.io/gorm"

	"github.com/stadtwache/stadtwache/event"
	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
)

// CreateIncident implements IncidentRepository interface.
func (repo *Repository) CreateIncident(args repository.CreateIncidentArgs) (*model.Incident, error) {
	if args.ReportedBy == uuid.Nil {
		return nil, repository.ErrNilID
	}

	i := &model.Incident{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       args.Title,
		Description: args.Description,
		Priority:    args.Priority,
		Status:      model.IncidentStatusOpen,
		Location:    args.Location,
		Address:     args.Address,
		ReportedBy:  args.ReportedBy,
		Images:      args.Images,
	}
	if err := repo.db.Create(i).Error; err != nil {
		return nil, err
	}

	repo.hub.Publish(hub.Message{
		Name: event.IncidentCreated,
		Fields: hub.Fields{
			"incident_id": i.ID,
			"incident":    i,
		},
	})
	return i, nil
}

// GetIncident implements IncidentRepository interface.
func (repo *Repository) GetIncident(id uuid.UUID) (*model.Incident, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNotFound
	}
	var i model.Incident
	if err := repo.db.First(&i, &model.Incident{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return &i, nil
}

// GetIncidents implements IncidentRepository interface.
func (repo *Repository) GetIncidents() ([]*model.Incident, error) {
	incidents := make([]*model.Incident, 0)
	return incidents, repo.db.Order("created_at DESC").Find(&incidents).Error
}

// UpdateIncident implements IncidentRepository interface.
func (repo *Repository) UpdateIncident(id uuid.UUID, args repository.UpdateIncidentArgs) (*model.Incident, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNilID
	}

	if args.Status != nil && !model.ValidIncidentStatus(*args.Status) {
		return nil, repository.ArgError("status", "invalid status")
	}
	if args.Priority != nil && !model.ValidIncidentPriority(*args.Priority) {
		return nil, repository.ArgError("priority", "invalid priority")
	}

	var i model.Incident
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&i, &model.Incident{ID: id}).Error; err != nil {
			return convertError(err)
		}

		changes := map[string]interface{}{}
		if args.Title != nil {
			changes["title"] = *args.Title
		}
		if args.Description != nil {
			changes["description"] = *args.Description
		}
		if args.Priority != nil {
			changes["priority"] = *args.Priority
		}
		if args.Status != nil {
			changes["status"] = *args.Status
		}
		if args.Address != nil {
			changes["address"] = *args.Address
		}
		if len(changes) > 0 {
			if err := tx.Model(&i).Updates(changes).Error; err != nil {
				return err
			}
		}
		return tx.First(&i, &model.Incident{ID: id}).Error
	})
	if err != nil {
		return nil, err
	}

	repo.hub.Publish(hub.Message{
		Name: event.IncidentUpdated,
		Fields: hub.Fields{
			"incident_id": i.ID,
			"incident":    &i,
		},
	})
	return &i, nil
}

// AssignIncident implements IncidentRepository interface.
func (repo *Repository) AssignIncident(id uuid.UUID, args repository.AssignIncidentArgs) (*model.Incident, error) {
	if id == uuid.Nil || args.AssignedTo == uuid.Nil {
		return nil, repository.ErrNilID
	}

	var i model.Incident
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&i, &model.Incident{ID: id}).Error; err != nil {
			return convertError(err)
		}
		changes := map[string]interface{}{
			"assigned_to":      args.AssignedTo,
			"assigned_to_name": args.AssignedToName,
			"status":           model.IncidentStatusInProgress,
		}
		if err := tx.Model(&i).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&i, &model.Incident{ID: id}).Error
	})
	if err != nil {
		return nil, err
	}

	repo.hub.Publish(hub.Message{
		Name: event.IncidentAssigned,
		Fields: hub.Fields{
			"incident_id": i.ID,
			"incident":    &i,
			"assigned_to": args.AssignedToName,
		},
	})
	return &i, nil
}

// CompleteIncident implements IncidentRepository interface.
func (repo *Repository) CompleteIncident(id uuid.UUID, completedBy *model.User) (*model.Report, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNilID
	}

	var archive *model.Report
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var i model.Incident
		if err := tx.First(&i, &model.Incident{ID: id}).Error; err != nil {
			return convertError(err)
		}

		now := time.Now()
		archive = &model.Report{
			ID:    uuid.Must(uuid.NewV4()),
			Title: fmt.Sprintf("Archiv: %s", i.Title),
			Content: fmt.Sprintf(
				"Vorfall abgeschlossen:\n\nTitel: %s\nBeschreibung: %s\nOrt: %s\nPriorität: %s\n\nAbgeschlossen von: %s\nDatum: %s",
				i.Title, i.Description, i.Address, i.Priority,
				completedBy.Name, now.Format("02.01.2006 15:04"),
			),
			AuthorID:   completedBy.ID,
			AuthorName: completedBy.Name,
			ShiftDate:  now.Format("2006-01-02"),
			Status:     model.ReportStatusArchived,
			IncidentID: i.ID,
		}
		if err := tx.Create(archive).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Incident{ID: id}).Error
	})
	if err != nil {
		return nil, err
	}

	repo.hub.Publish(hub.Message{
		Name: event.IncidentCompleted,
		Fields: hub.Fields{
			"incident_id":  id,
			"completed_by": completedBy.Name,
			"archived_as":  archive.ID,
		},
	})
	return archive, nil
}

// DeleteIncident implements IncidentRepository interface.
func (repo *Repository) DeleteIncident(id uuid.UUID) error {
	if id == uuid.Nil {
		return repository.ErrNilID
	}
	result := repo.db.Delete(&model.Incident{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountIncidents implements IncidentRepository interface.
func (repo *Repository) CountIncidents(status string) (int64, error) {
	var count int64
	tx := repo.db.Model(&model.Incident{})
	if len(status) > 0 {
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
