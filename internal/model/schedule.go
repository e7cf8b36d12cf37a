package model

import (
	"time"

	"gorm.io/datatypes"
)

// schedules — месячный график: одна строка на (user, store, month).
type Schedule struct {
	ID uint `gorm:"primaryKey;autoIncrement"`

	UserID  uint `gorm:"not null;uniqueIndex:idx_schedule_key"`
	StoreID uint `gorm:"not null;uniqueIndex:idx_schedule_key"`

	// Месяц в формате ГГГГ-ММ.
	Month string `gorm:"type:varchar(7);not null;uniqueIndex:idx_schedule_key"`

	// Битмап смен: один символ на календарный день,
	// 'С' — смена, 'В' — выходной. Длина равна числу дней в месяце.
	Days string `gorm:"type:varchar(64);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Store *Store `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// substitutions — разовая подмена: не больше одной на (user, date).
type Substitution struct {
	ID uint `gorm:"primaryKey;autoIncrement"`

	UserID  uint           `gorm:"not null;uniqueIndex:idx_substitution_key"`
	Date    datatypes.Date `gorm:"not null;uniqueIndex:idx_substitution_key"`
	StoreID uint           `gorm:"not null;index"`

	// Отработанные часы, 1..24.
	Hours int `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Store *Store `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
