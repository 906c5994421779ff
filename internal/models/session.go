package models

import "time"

// Session is a login session. ID is the hex SHA-256 of the bearer token;
// the raw token is never stored.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
