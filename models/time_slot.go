package models

// TimeSlot is a ring (pickup/delivery) window such as "10:00 - 12:00".
// Labels are free text and may overlap.
type TimeSlot struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	TimeRange string `json:"time_range" gorm:"not null"`
}

func (TimeSlot) TableName() string {
	return "ring_slots"
}
