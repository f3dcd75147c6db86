package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"usersvc/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db:  db,
		now: time.Now,
	}
}

// List returns one page of users ordered by id. The page and the total are
// read separately, so total may lag behind concurrent writes.
func (r *GORMUserRepository) List(ctx context.Context, page, pageSize int) (*models.Page[models.User], error) {
	users := make([]models.User, 0, pageSize)
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(pageSize).
		Offset(models.Offset(page, pageSize)).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return models.NewPage(users, page, pageSize, total), nil
}

// GetByID retrieves a user by their numeric id.
func (r *GORMUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByUUID retrieves a user by their uuid.
func (r *GORMUserRepository) GetByUUID(ctx context.Context, key string) (*models.User, error) {
	return r.first(ctx, "uuid = ?", key)
}

func (r *GORMUserRepository) first(ctx context.Context, query string, key interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, key).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %v: %w", key, err)
	}
	return &user, nil
}

// Create inserts a user, generating its uuid and creation time. The store assigns the id.
func (r *GORMUserRepository) Create(ctx context.Context, name, email string) (*models.User, error) {
	user := models.User{
		UUID:      uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: r.now().UTC().Format(models.TimestampLayout),
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", classify(err))
	}
	return &user, nil
}

// UpdateByID applies changes to the user with the given id.
func (r *GORMUserRepository) UpdateByID(ctx context.Context, id int64, changes models.UserChanges) (*models.User, error) {
	return r.update(ctx, "id = ?", id, changes)
}

// UpdateByUUID applies changes to the user with the given uuid.
func (r *GORMUserRepository) UpdateByUUID(ctx context.Context, key string, changes models.UserChanges) (*models.User, error) {
	return r.update(ctx, "uuid = ?", key, changes)
}

func (r *GORMUserRepository) update(ctx context.Context, query string, key interface{}, changes models.UserChanges) (*models.User, error) {
	if changes.Empty() {
		return r.first(ctx, query, key)
	}
	var user models.User
	res := r.db.WithContext(ctx).
		Model(&user).
		Clauses(clause.Returning{}).
		Where(query, key).
		Updates(changes.Columns())
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user %v: %w", key, classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &user, nil
}

// DeleteByID removes the user with the given id and returns the removed row.
func (r *GORMUserRepository) DeleteByID(ctx context.Context, id int64) (*models.User, error) {
	return r.delete(ctx, "id = ?", id)
}

// DeleteByUUID removes the user with the given uuid and returns the removed row.
func (r *GORMUserRepository) DeleteByUUID(ctx context.Context, key string) (*models.User, error) {
	return r.delete(ctx, "uuid = ?", key)
}

func (r *GORMUserRepository) delete(ctx context.Context, query string, key interface{}) (*models.User, error) {
	var user models.User
	res := r.db.WithContext(ctx).Clauses(clause.Returning{}).Where(query, key).Delete(&user)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete user %v: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &user, nil
}
