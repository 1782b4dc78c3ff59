package services

import (
	"context"

	"laundrypro-backend/models"
)

// Seed wipes every table and loads a small demo data set.
func (s *LaundryService) Seed(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return classify(err)
	}
	if s.phones != nil {
		s.phones.Flush()
	}

	ahmet := &models.Customer{Name: "Ahmet Yilmaz", Phone: "05551234567"}
	zeynep := &models.Customer{Name: "Zeynep Koc", Phone: "05553334455"}
	for _, c := range []*models.Customer{ahmet, zeynep} {
		if err := s.repo.CreateCustomer(ctx, c); err != nil {
			return classify(err)
		}
	}

	morning := &models.TimeSlot{TimeRange: "10:00 - 12:00"}
	afternoon := &models.TimeSlot{TimeRange: "14:00 - 16:00"}
	for _, slot := range []*models.TimeSlot{morning, afternoon} {
		if err := s.repo.CreateTimeSlot(ctx, slot); err != nil {
			return classify(err)
		}
	}

	if err := s.repo.CreateAppointment(ctx, &models.Appointment{CustomerID: ahmet.ID, RingSlotID: morning.ID}); err != nil {
		return classify(err)
	}

	shelf := "A1"
	items := []*models.LaundryItem{
		{CustomerID: ahmet.ID, Status: models.StatusReady, ShelfCode: &shelf},
		{CustomerID: zeynep.ID, Status: models.StatusWashing},
	}
	for _, item := range items {
		if err := s.repo.CreateLaundryItem(ctx, item); err != nil {
			return classify(err)
		}
	}

	s.audit.Printf("demo data seeded: customers=2, ring_slots=2, appointments=1, laundry=2")
	return nil
}
