package store

import (
	"context"

	"laundrypro-backend/models"

	"gorm.io/gorm/clause"
)

func (s *Store) CreateTimeSlot(ctx context.Context, slot *models.TimeSlot) error {
	return wrap(s.db.WithContext(ctx).Create(slot).Error, "create time slot")
}

func (s *Store) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	slots := []models.TimeSlot{}
	err := s.db.WithContext(ctx).Order("id").Find(&slots).Error
	return slots, wrap(err, "list time slots")
}

// CreateAppointment relies on the foreign keys to reject unknown customers
// or slots; it does not look them up first.
func (s *Store) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(appointment).Error
	return wrap(err, "create appointment")
}

func (s *Store) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := s.db.WithContext(ctx).Order("id").Find(&appointments).Error
	return appointments, wrap(err, "list appointments")
}

func (s *Store) CountAppointments(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Appointment{}).Count(&count).Error
	return count, wrap(err, "count appointments")
}
