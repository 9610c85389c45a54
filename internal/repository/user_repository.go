package repository

import (
	"context"

	"github.com/shinyyama/billing-api/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	// FindByEmail returns gorm.ErrRecordNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type GormUserRepository struct {
	dbHandle
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	r := &GormUserRepository{}
	if db != nil {
		r.SetDB(db)
	}
	return r
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	db, err := r.get()
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := db.WithContext(ctx).Where("email = ?", email).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
