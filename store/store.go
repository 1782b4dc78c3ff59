package store

import (
	"context"

	"laundrypro-backend/models"

	"gorm.io/gorm"
)

// Store is the persistence layer. It owns no connection lifecycle; the
// *gorm.DB it wraps is opened and closed by the process.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the four tables and their foreign keys.
func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&models.Customer{},
		&models.TimeSlot{},
		&models.Appointment{},
		&models.LaundryItem{},
	)
	return wrap(err, "migrate")
}

// Reset deletes every row from every table. Used only for seeding demo data.
func (s *Store) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Appointment{},
			&models.LaundryItem{},
			&models.TimeSlot{},
			&models.Customer{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return wrap(err, "reset")
			}
		}
		return nil
	})
}
