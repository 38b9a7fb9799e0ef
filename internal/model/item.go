package model

import "time"

// Item — серверная модель записи хранилища пользователя.
type Item struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	OwnerID int64 `gorm:"not null;index"` // ссылка на users.id, не меняется после создания

	// Связи
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Name string `gorm:"not null;size:255"`
	Note string `gorm:"type:text"` // всегда санитизированное значение

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
