package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/repository"
)

// UserRepository keeps accounts in a map keyed by id.
type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]domain.User
	byName map[string]int64
}

// NewUserRepository returns an empty store.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:   make(map[int64]domain.User),
		byName: make(map[string]int64),
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[user.Username]; exists {
		return repository.ErrDuplicateUsername
	}
	r.nextID++
	user.ID = r.nextID
	r.byID[user.ID] = *user
	r.byName[user.Username] = user.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *UserRepository) ListHelpers(_ context.Context, includeID int64) ([]domain.UserSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []domain.UserSummary{}
	for _, user := range r.byID {
		if user.Role == domain.RoleHelper || user.ID == includeID {
			result = append(result, domain.UserSummary{ID: user.ID, Username: user.Username})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Len returns the number of stored accounts.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
