package tokenstore

import (
	"fmt"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo keeps the token for the lifetime of the process only.
type InMemoryRepo struct {
	mu    sync.RWMutex
	token string
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

func (r *InMemoryRepo) Get() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token, nil
}

func (r *InMemoryRepo) Set(token string) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
	return nil
}

func (r *InMemoryRepo) Delete() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = ""
	return nil
}
