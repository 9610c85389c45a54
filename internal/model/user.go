package model

import "time"

type User struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Email            string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Name             string    `gorm:"column:name;size:255" json:"name"`
	StripeCustomerID *string   `gorm:"column:stripe_customer_id;size:64" json:"stripeCustomerId"`
	PasswordHash     string    `gorm:"column:password_hash;size:255" json:"-"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
