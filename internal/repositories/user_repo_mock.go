package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"usersvc/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// It enforces the same unique email and uuid rules as the database.
type MockUserRepository struct {
	users  map[int64]models.User
	nextID int64
	mu     sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[int64]models.User),
		nextID: 1,
	}
}

// List returns one page of users ordered by id.
func (r *MockUserRepository) List(_ context.Context, page, pageSize int) (*models.Page[models.User], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := models.Offset(page, pageSize)
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return models.NewPage(append([]models.User{}, all[start:end]...), page, pageSize, int64(len(all))), nil
}

// GetByID returns a user by its id.
func (r *MockUserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByUUID returns a user by its uuid.
func (r *MockUserRepository) GetByUUID(_ context.Context, key string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.findUUID(key)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// Create adds a new user.
func (r *MockUserRepository) Create(_ context.Context, name, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(email, 0) {
		return nil, fmt.Errorf("failed to create user: %w: email %s", ErrDuplicateKey, email)
	}
	u := models.User{
		ID:        r.nextID,
		UUID:      uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC().Format(models.TimestampLayout),
	}
	r.nextID++
	r.users[u.ID] = u
	return &u, nil
}

// UpdateByID modifies an existing user addressed by id.
func (r *MockUserRepository) UpdateByID(_ context.Context, id int64, changes models.UserChanges) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return r.apply(u, changes)
}

// UpdateByUUID modifies an existing user addressed by uuid.
func (r *MockUserRepository) UpdateByUUID(_ context.Context, key string, changes models.UserChanges) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.findUUID(key)
	if !ok {
		return nil, nil
	}
	return r.apply(u, changes)
}

// DeleteByID removes a user by its id.
func (r *MockUserRepository) DeleteByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	delete(r.users, id)
	return &u, nil
}

// DeleteByUUID removes a user by its uuid.
func (r *MockUserRepository) DeleteByUUID(_ context.Context, key string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.findUUID(key)
	if !ok {
		return nil, nil
	}
	delete(r.users, u.ID)
	return &u, nil
}

// apply must be called with the write lock held.
func (r *MockUserRepository) apply(u models.User, changes models.UserChanges) (*models.User, error) {
	if changes.Email != nil && r.emailTaken(*changes.Email, u.ID) {
		return nil, fmt.Errorf("failed to update user %d: %w: email %s", u.ID, ErrDuplicateKey, *changes.Email)
	}
	if changes.Name != nil {
		u.Name = *changes.Name
	}
	if changes.Email != nil {
		u.Email = *changes.Email
	}
	r.users[u.ID] = u
	return &u, nil
}

func (r *MockUserRepository) findUUID(key string) (models.User, bool) {
	for _, u := range r.users {
		if u.UUID == key {
			return u, true
		}
	}
	return models.User{}, false
}

func (r *MockUserRepository) emailTaken(email string, except int64) bool {
	for _, u := range r.users {
		if u.Email == email && u.ID != except {
			return true
		}
	}
	return false
}
