package store

import (
	"context"

	"laundrypro-backend/models"
)

func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return wrap(s.db.WithContext(ctx).Create(customer).Error, "create customer")
}

func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	err := s.db.WithContext(ctx).Order("id").Find(&customers).Error
	return customers, wrap(err, "list customers")
}

func (s *Store) CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error; err != nil {
		return nil, wrap(err, "customer by phone")
	}
	return &customer, nil
}

func (s *Store) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, wrap(err, "count customers")
}
