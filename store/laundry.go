package store

import (
	"context"

	"laundrypro-backend/models"

	"gorm.io/gorm/clause"
)

const laundryWithCustomerColumns = "l.id, l.status, l.shelf_code, c.name, c.phone"

func (s *Store) CreateLaundryItem(ctx context.Context, item *models.LaundryItem) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
	return wrap(err, "create laundry item")
}

// UpdateLaundryStatus overwrites status and shelf code. A nil shelf clears
// the column. Updating an id that does not exist is not an error.
func (s *Store) UpdateLaundryStatus(ctx context.Context, id uint, status string, shelf *string) error {
	var shelfValue interface{}
	if shelf != nil {
		shelfValue = *shelf
	}
	err := s.db.WithContext(ctx).
		Model(&models.LaundryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"shelf_code": shelfValue,
		}).Error
	return wrap(err, "update laundry status")
}

// LaundryWithCustomer reads one item joined with its owner.
func (s *Store) LaundryWithCustomer(ctx context.Context, id uint) (*models.LaundryWithCustomer, error) {
	var rows []models.LaundryWithCustomer
	err := s.db.WithContext(ctx).
		Table("laundry_status AS l").
		Select(laundryWithCustomerColumns).
		Joins("JOIN customers c ON c.id = l.customer_id").
		Where("l.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, wrap(err, "laundry with customer")
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// ListLaundry returns all items, or only those whose status equals status
// exactly when it is non-empty.
func (s *Store) ListLaundry(ctx context.Context, status string) ([]models.LaundryItem, error) {
	items := []models.LaundryItem{}
	query := s.db.WithContext(ctx).Order("id")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&items).Error
	return items, wrap(err, "list laundry")
}

func (s *Store) ListLaundryWithCustomer(ctx context.Context) ([]models.LaundryWithCustomer, error) {
	rows := []models.LaundryWithCustomer{}
	err := s.db.WithContext(ctx).
		Table("laundry_status AS l").
		Select(laundryWithCustomerColumns).
		Joins("JOIN customers c ON c.id = l.customer_id").
		Order("l.id").
		Scan(&rows).Error
	return rows, wrap(err, "list laundry with customer")
}

// ReadyForPickup lists ready items that have a shelf code, with their owners.
func (s *Store) ReadyForPickup(ctx context.Context) ([]models.LaundryWithCustomer, error) {
	rows := []models.LaundryWithCustomer{}
	err := s.db.WithContext(ctx).
		Table("laundry_status AS l").
		Select(laundryWithCustomerColumns).
		Joins("JOIN customers c ON c.id = l.customer_id").
		Where("l.status = ? AND l.shelf_code IS NOT NULL AND l.shelf_code <> ''", models.StatusReady).
		Order("l.id").
		Scan(&rows).Error
	return rows, wrap(err, "ready for pickup")
}
