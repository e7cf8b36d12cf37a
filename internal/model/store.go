package model

import "time"

// stores
type Store struct {
	ID uint `gorm:"primaryKey;autoIncrement"`

	// Номер вида M001; выдаётся последовательно при создании.
	Number  string `gorm:"type:varchar(16);not null;uniqueIndex"`
	Address string `gorm:"type:varchar(255);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// admin_stores — прикрепление магазинов к администраторам (many-to-many).
type AdminStore struct {
	AdminID uint `gorm:"primaryKey;index"`
	StoreID uint `gorm:"primaryKey;index"`

	Admin *User  `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Store *Store `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
