package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/shinyyama/billing-api/internal/model"
	"gorm.io/gorm"
)

// MemoryUserRepository keeps users in a map keyed by email. It mirrors the gorm
// repository's not-found behaviour so callers cannot tell them apart.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
	err   error
}

func NewMemoryUserRepository(users ...model.User) *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]model.User, len(users))}
	for _, u := range users {
		r.Put(u)
	}
	return r
}

func (r *MemoryUserRepository) Put(u model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[strings.ToLower(u.Email)] = u
}

// SetErr makes every later FindByEmail fail with err; nil clears it.
func (r *MemoryUserRepository) SetErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

type MemoryPaymentRepository struct {
	mu       sync.RWMutex
	payments []model.Payment
	err      error
	calls    int
}

func NewMemoryPaymentRepository(payments ...model.Payment) *MemoryPaymentRepository {
	return &MemoryPaymentRepository{payments: payments}
}

func (r *MemoryPaymentRepository) Add(p model.Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, p)
}

// SetErr makes every later FindAll fail with err; nil clears it.
func (r *MemoryPaymentRepository) SetErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *MemoryPaymentRepository) FindAll(_ context.Context) ([]model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]model.Payment, len(r.payments))
	copy(out, r.payments)
	return out, nil
}

// Calls reports how many times FindAll ran.
func (r *MemoryPaymentRepository) Calls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.calls
}
