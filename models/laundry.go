package models

// Recognized laundry statuses. The column is free text; any other value is
// stored as given but never triggers a notification.
const (
	StatusWashing   = "washing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
)

type LaundryItem struct {
	ID         uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint    `json:"customer_id" gorm:"not null;index"`
	Status     string  `json:"status" gorm:"not null;index"`
	ShelfCode  *string `json:"shelf_code"`

	Customer Customer `json:"-" gorm:"foreignKey:CustomerID"`
}

func (LaundryItem) TableName() string {
	return "laundry_status"
}

// LaundryWithCustomer is a laundry item joined with its owner's contact details.
type LaundryWithCustomer struct {
	ID        uint    `json:"id"`
	Status    string  `json:"status"`
	ShelfCode *string `json:"shelf_code"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
}

// Shelf returns the shelf code or "" when none is assigned.
func (l LaundryWithCustomer) Shelf() string {
	if l.ShelfCode == nil {
		return ""
	}
	return *l.ShelfCode
}
