package model

import "time"

// Payment is one settled charge. Amount is in minor currency units (cents).
type Payment struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"column:email;size:255;index;not null" json:"email"`
	Amount    int64     `gorm:"column:amount;not null" json:"amount"`
	Currency  string    `gorm:"column:currency;size:3;not null;default:usd" json:"currency"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Payment) TableName() string {
	return "payments"
}
