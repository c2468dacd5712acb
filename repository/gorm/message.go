package gorm

import (
	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"gorm.io/gorm"

	"github.com/stadtwache/stadtwache/event"
	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
)

// CreateMessage implements MessageRepository interface.
func (repo *Repository) CreateMessage(args repository.CreateMessageArgs) (*model.Message, error) {
	if args.SenderID == uuid.Nil {
		return nil, repository.ErrNilID
	}

	m := &model.Message{
		ID:          uuid.Must(uuid.NewV4()),
		Content:     args.Content,
		SenderID:    args.SenderID,
		SenderName:  args.SenderName,
		RecipientID: args.RecipientID,
		Channel:     args.Channel,
		MessageType: args.MessageType,
	}
	if len(m.Channel) == 0 {
		m.Channel = model.DefaultChannel
	}
	if len(m.MessageType) == 0 {
		m.MessageType = model.MessageTypeText
	}

	if err := repo.db.Create(m).Error; err != nil {
		return nil, err
	}

	repo.hub.Publish(hub.Message{
		Name: event.MessageCreated,
		Fields: hub.Fields{
			"message_id": m.ID,
			"message":    m,
		},
	})
	return m, nil
}

// GetMessage implements MessageRepository interface.
func (repo *Repository) GetMessage(id uuid.UUID) (*model.Message, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNotFound
	}
	var m model.Message
	if err := repo.db.First(&m, &model.Message{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return &m, nil
}

// GetMessages implements MessageRepository interface.
func (repo *Repository) GetMessages(channel string, limit int) ([]*model.Message, error) {
	if len(channel) == 0 {
		channel = model.DefaultChannel
	}
	if limit <= 0 {
		limit = 50
	}
	messages := make([]*model.Message, 0)
	return messages, repo.db.
		Where("channel = ?", channel).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
}

// DeleteMessage implements MessageRepository interface.
func (repo *Repository) DeleteMessage(id uuid.UUID) error {
	if id == uuid.Nil {
		return repository.ErrNilID
	}

	var m model.Message
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, &model.Message{ID: id}).Error; err != nil {
			return convertError(err)
		}
		return tx.Delete(&model.Message{ID: id}).Error
	})
	if err != nil {
		return err
	}

	repo.hub.Publish(hub.Message{
		Name: event.MessageDeleted,
		Fields: hub.Fields{
			"message_id": m.ID,
			"channel":    m.Channel,
		},
	})
	return nil
}

// CountMessages implements MessageRepository interface.
func (repo *Repository) CountMessages() (int64, error) {
	var count int64
	if err := repo.db.Model(&model.Message{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
