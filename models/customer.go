package models

type Customer struct {
	ID    uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name" gorm:"not null"`
	Phone string `json:"phone" gorm:"not null;uniqueIndex"`
}

func (Customer) TableName() string {
	return "customers"
}
