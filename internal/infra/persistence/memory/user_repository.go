package memory

import (
	"context"
	"strings"
	"sync"

	domuser "github.com/JoelVR2k/InventoryManager/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domuser.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int64]*domuser.User),
		nextID: 1,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(u.Email)
	for _, existing := range r.users {
		if strings.ToLower(existing.Email) == email {
			return nil, domuser.ErrEmailAlreadyUsed
		}
	}

	stored := *u
	stored.ID = r.nextID
	r.nextID++
	r.users[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range r.users {
		if strings.ToLower(u.Email) == email {
			result := *u
			return &result, nil
		}
	}
	return nil, domuser.ErrUserNotFound
}
