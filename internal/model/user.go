package model

import "time"

// users
type User struct {
	ID uint `gorm:"primaryKey;autoIncrement"`

	// Идентификатор во внешнем мессенджере (одна сессия на identity).
	ExternalID int64 `gorm:"not null;index"`

	FullName string `gorm:"type:varchar(255);not null"`
	Barcode  string `gorm:"type:varchar(64);not null;uniqueIndex"`

	// Дата трудоустройства в формате ДД.ММ.ГГГГ, как вводит пользователь.
	HireDate *string `gorm:"type:varchar(10)"`

	IsAdmin  bool     `gorm:"not null;default:false"`
	Position Position `gorm:"type:varchar(64);not null;default:'Кассир Торгового Зала'"`

	WorkStoreID *uint `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Навигационные поля (опционально)
	WorkStore *Store `gorm:"foreignKey:WorkStoreID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
