package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/riskibarqy/football-tournament/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	r := &UserRepository{users: make(map[string]user.User, len(users))}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b user.User) int {
		return strings.Compare(a.Username, b.Username)
	})
	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	return u, ok, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID]; exists {
		return fmt.Errorf("user %s already exists", u.ID)
	}
	r.users[u.ID] = u
	return nil
}

func (r *UserRepository) Update(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID]; !exists {
		return fmt.Errorf("user %s not found", u.ID)
	}
	r.users[u.ID] = u
	return nil
}

func (r *UserRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, userID)
	return nil
}

func (r *UserRepository) all() []user.User {
	items, _ := r.List(context.Background())
	return items
}

func (r *UserRepository) replace(items []user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]user.User, len(items))
	for _, u := range items {
		r.users[u.ID] = u
	}
}
