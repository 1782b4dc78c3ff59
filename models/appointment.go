package models

// Appointment books a customer onto a ring slot. Nothing limits how many
// appointments a slot or a customer can have.
type Appointment struct {
	ID         uint `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint `json:"customer_id" gorm:"not null;index"`
	RingSlotID uint `json:"ring_slot_id" gorm:"not null;index"`

	Customer Customer `json:"-" gorm:"foreignKey:CustomerID"`
	RingSlot TimeSlot `json:"-" gorm:"foreignKey:RingSlotID"`
}

func (Appointment) TableName() string {
	return "ring_appointments"
}
