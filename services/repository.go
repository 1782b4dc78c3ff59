package services

import (
	"context"

	"laundrypro-backend/models"
)

// Repository is the persistence the laundry service needs. *store.Store
// implements it.
type Repository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)

	CreateTimeSlot(ctx context.Context, slot *models.TimeSlot) error
	ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error)

	CreateAppointment(ctx context.Context, appointment *models.Appointment) error
	ListAppointments(ctx context.Context) ([]models.Appointment, error)

	CreateLaundryItem(ctx context.Context, item *models.LaundryItem) error
	UpdateLaundryStatus(ctx context.Context, id uint, status string, shelf *string) error
	LaundryWithCustomer(ctx context.Context, id uint) (*models.LaundryWithCustomer, error)
	ListLaundry(ctx context.Context, status string) ([]models.LaundryItem, error)
	ListLaundryWithCustomer(ctx context.Context) ([]models.LaundryWithCustomer, error)
	ReadyForPickup(ctx context.Context) ([]models.LaundryWithCustomer, error)

	Reset(ctx context.Context) error
}
