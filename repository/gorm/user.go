package gorm

import (
	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
)

// CreateUser implements UserRepository interface.
func (repo *Repository) CreateUser(args repository.CreateUserArgs) (*model.User, error) {
	user := &model.User{
		ID:            uuid.Must(uuid.NewV4()),
		Email:         args.Email,
		Name:          args.Name,
		Password:      args.Password,
		Role:          args.Role,
		BadgeNumber:   args.BadgeNumber,
		Department:    args.Department,
		Phone:         args.Phone,
		ServiceNumber: args.ServiceNumber,
		Rank:          args.Rank,
		WorkStatus:    model.DefaultWorkStatus,
		IsActive:      true,
	}
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", args.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return repository.ErrAlreadyExists
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser implements UserRepository interface.
func (repo *Repository) GetUser(id uuid.UUID) (*model.User, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNotFound
	}
	var user model.User
	if err := repo.db.First(&user, &model.User{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return &user, nil
}

// GetUserByEmail implements UserRepository interface.
func (repo *Repository) GetUserByEmail(email string) (*model.User, error) {
	if len(email) == 0 {
		return nil, repository.ErrNotFound
	}
	var user model.User
	if err := repo.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, convertError(err)
	}
	return &user, nil
}

// GetUsers implements UserRepository interface.
func (repo *Repository) GetUsers(activeOnly bool) ([]*model.User, error) {
	users := make([]*model.User, 0)
	tx := repo.db
	if activeOnly {
		tx = tx.Where("is_active = true")
	}
	return users, tx.Find(&users).Error
}

// UpdateUser implements UserRepository interface.
func (repo *Repository) UpdateUser(id uuid.UUID, args repository.UpdateUserArgs) (*model.User, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNilID
	}

	var user model.User
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, &model.User{ID: id}).Error; err != nil {
			return convertError(err)
		}

		changes := map[string]interface{}{}
		if args.Name != nil {
			changes["name"] = *args.Name
		}
		if args.Phone != nil {
			changes["phone"] = *args.Phone
		}
		if args.ServiceNumber != nil {
			changes["service_number"] = *args.ServiceNumber
		}
		if args.Rank != nil {
			changes["rank"] = *args.Rank
		}
		if args.Department != nil {
			changes["department"] = *args.Department
		}
		if args.WorkStatus != nil {
			changes["work_status"] = *args.WorkStatus
		}
		if len(changes) == 0 {
			return nil
		}

		if err := tx.Model(&user).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&user, &model.User{ID: id}).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser implements UserRepository interface.
func (repo *Repository) DeleteUser(id uuid.UUID) error {
	if id == uuid.Nil {
		return repository.ErrNilID
	}
	result := repo.db.Delete(&model.User{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountUsers implements UserRepository interface.
func (repo *Repository) CountUsers() (int64, error) {
	var count int64
	if err := repo.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
