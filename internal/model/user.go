package model

import "time"

// User — серверная модель учётной записи (principal).
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Email    string `gorm:"not null;uniqueIndex;size:255"`
	Password string `gorm:"not null"` // bcrypt digest, никогда не отдаётся клиенту
	Role     Role   `gorm:"not null;size:16;default:user"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
