package repositories

import (
	"context"

	"usersvc/internal/models"
)

// UserRepository defines the interface for user data access.
// Lookups and mutations come in id- and uuid-keyed pairs. A missing row is
// reported as a nil user with a nil error.
type UserRepository interface {
	List(ctx context.Context, page, pageSize int) (*models.Page[models.User], error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUUID(ctx context.Context, uuid string) (*models.User, error)
	Create(ctx context.Context, name, email string) (*models.User, error)
	UpdateByID(ctx context.Context, id int64, changes models.UserChanges) (*models.User, error)
	UpdateByUUID(ctx context.Context, uuid string, changes models.UserChanges) (*models.User, error)
	DeleteByID(ctx context.Context, id int64) (*models.User, error)
	DeleteByUUID(ctx context.Context, uuid string) (*models.User, error)
}
