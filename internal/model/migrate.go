package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей ядра.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Store{},
		&AdminStore{},
		&Schedule{},
		&Substitution{},
	)
}
