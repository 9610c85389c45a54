package repository

import (
	"context"

	"github.com/shinyyama/billing-api/internal/model"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	FindAll(ctx context.Context) ([]model.Payment, error)
}

type GormPaymentRepository struct {
	dbHandle
}

func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	r := &GormPaymentRepository{}
	if db != nil {
		r.SetDB(db)
	}
	return r
}

// FindAll loads every payment row. There is no pagination.
func (r *GormPaymentRepository) FindAll(ctx context.Context) ([]model.Payment, error) {
	db, err := r.get()
	if err != nil {
		return nil, err
	}
	var list []model.Payment
	if err := db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
