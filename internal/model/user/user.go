package user

import "time"

// User mirrors the accounts table. The password hash never serializes.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	FirstName    string    `gorm:"size:150" json:"firstName"`
	LastName     string    `gorm:"size:150" json:"lastName"`
	Email        string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}
