package repository

import (
	"sync/atomic"

	"gorm.io/gorm"
)

// dbHandle lets the server attach the connection after it has started serving.
type dbHandle struct {
	p atomic.Pointer[gorm.DB]
}

func (h *dbHandle) SetDB(db *gorm.DB) {
	h.p.Store(db)
}

func (h *dbHandle) get() (*gorm.DB, error) {
	db := h.p.Load()
	if db == nil {
		return nil, ErrNoDB
	}
	return db, nil
}
