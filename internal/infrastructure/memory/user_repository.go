// Package memory provides in-memory implementations of the persistence
// interfaces. They back the test suite and local development without a
// postgres or redis instance, and must match the SQL semantics.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/bookbridge/bookbridge/internal/domain/entity"
	"github.com/bookbridge/bookbridge/internal/domain/repository"
)

type UserRepository struct {
	mu     sync.RWMutex
	seq    int
	byID   map[string]*entity.User
	byMail map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:   make(map[string]*entity.User),
		byMail: make(map[string]*entity.User),
	}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byMail[u.Email]; exists {
		return repository.ErrDuplicate
	}
	r.seq++
	u.ID = "user-" + strconv.Itoa(r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.byID[u.ID] = &cp
	r.byMail[u.Email] = &cp
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byMail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
