package models

import "time"

type Hotel struct {
	ID         int64     `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Address    string    `json:"address" yaml:"address"`
	Phone      string    `json:"phone" yaml:"phone"`
	Email      string    `json:"email" yaml:"email"`
	OwnerName  string    `json:"owner_name" yaml:"owner_name"`
	OwnerEmail string    `json:"owner_email" yaml:"owner_email"`
	IsActive   bool      `json:"is_active" yaml:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
