package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"laundrypro-backend/models"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	placeholderName  = "[CustomerName]"
	placeholderShelf = "[ShelfCode]"

	DefaultReadyMessage    = "Dear [CustomerName], your laundry is ready. Shelf code: [ShelfCode]"
	DefaultReminderMessage = "Dear [CustomerName], your laundry is still waiting for you on shelf [ShelfCode]"
)

type Options struct {
	ReadyMessage    string
	ReminderMessage string
	// PhoneCacheTTL bounds how long phone lookups are cached. Zero disables
	// the cache.
	PhoneCacheTTL time.Duration
}

// LaundryService implements the shop operations on top of a Repository.
type LaundryService struct {
	repo     Repository
	notifier Notifier
	audit    Auditor
	logger   *zap.Logger

	phones          *cache.Cache
	readyMessage    string
	reminderMessage string
}

func NewLaundryService(repo Repository, notifier Notifier, audit Auditor, logger *zap.Logger, opts Options) *LaundryService {
	s := &LaundryService{
		repo:            repo,
		notifier:        notifier,
		audit:           audit,
		logger:          logger,
		readyMessage:    opts.ReadyMessage,
		reminderMessage: opts.ReminderMessage,
	}
	if s.readyMessage == "" {
		s.readyMessage = DefaultReadyMessage
	}
	if s.reminderMessage == "" {
		s.reminderMessage = DefaultReminderMessage
	}
	if opts.PhoneCacheTTL > 0 {
		s.phones = cache.New(opts.PhoneCacheTTL, 2*opts.PhoneCacheTTL)
	}
	return s
}

func (s *LaundryService) RegisterCustomer(ctx context.Context, name, phone string) (*models.Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, invalid("name is required")
	}
	if phone == "" {
		return nil, invalid("phone is required")
	}

	customer := &models.Customer{Name: name, Phone: phone}
	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return nil, classify(err)
	}

	s.audit.Printf("customer registered: %s (%s)", customer.Name, customer.Phone)
	return customer, nil
}

func (s *LaundryService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	return customers, classify(err)
}

// CustomerByPhone looks a customer up by phone. Customers are never edited,
// so hits are served from the cache until they expire.
func (s *LaundryService) CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	if s.phones != nil {
		if cached, ok := s.phones.Get(phone); ok {
			customer := cached.(models.Customer)
			return &customer, nil
		}
	}

	customer, err := s.repo.CustomerByPhone(ctx, phone)
	if err != nil {
		return nil, classify(err)
	}
	if s.phones != nil {
		s.phones.SetDefault(phone, *customer)
	}
	return customer, nil
}

func (s *LaundryService) RegisterTimeSlot(ctx context.Context, timeRange string) (*models.TimeSlot, error) {
	timeRange = strings.TrimSpace(timeRange)
	if timeRange == "" {
		return nil, invalid("time_range is required")
	}

	slot := &models.TimeSlot{TimeRange: timeRange}
	if err := s.repo.CreateTimeSlot(ctx, slot); err != nil {
		return nil, classify(err)
	}

	s.audit.Printf("ring slot added: id=%d, time_range=%s", slot.ID, slot.TimeRange)
	return slot, nil
}

func (s *LaundryService) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	slots, err := s.repo.ListTimeSlots(ctx)
	return slots, classify(err)
}

// BookAppointment books customerID onto slotID. Unknown references are
// reported by the database. The same slot may be booked any number of times.
func (s *LaundryService) BookAppointment(ctx context.Context, customerID, slotID uint) error {
	if customerID == 0 {
		return invalid("customer_id is required")
	}
	if slotID == 0 {
		return invalid("ring_slot_id is required")
	}

	appointment := &models.Appointment{CustomerID: customerID, RingSlotID: slotID}
	if err := s.repo.CreateAppointment(ctx, appointment); err != nil {
		return classify(err)
	}

	s.audit.Printf("appointment booked: id=%d, customer_id=%d, ring_slot_id=%d", appointment.ID, customerID, slotID)
	return nil
}

func (s *LaundryService) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	appointments, err := s.repo.ListAppointments(ctx)
	return appointments, classify(err)
}

// CreateLaundryItem registers an item for customerID. A blank status means
// washing; any other status is stored as given.
func (s *LaundryService) CreateLaundryItem(ctx context.Context, customerID uint, status string, shelf *string) (*models.LaundryItem, error) {
	if customerID == 0 {
		return nil, invalid("customer_id is required")
	}
	if strings.TrimSpace(status) == "" {
		status = models.StatusWashing
	}

	item := &models.LaundryItem{
		CustomerID: customerID,
		Status:     status,
		ShelfCode:  normalizeShelf(shelf),
	}
	if err := s.repo.CreateLaundryItem(ctx, item); err != nil {
		return nil, classify(err)
	}

	s.audit.Printf("laundry item created: id=%d, customer_id=%d, status=%s, shelf=%s", item.ID, customerID, item.Status, shelfString(item.ShelfCode))
	return item, nil
}

// UpdateLaundryStatus overwrites the status and shelf code of item id.
// Any status may replace any other. Both values are stored as given.
//
// Setting "ready" with a shelf code notifies the owner. Delivery failures are
// logged and never returned; persistence failures abort the call before
// anything is notified or audited. Every call that gets past the update
// writes exactly one audit line, including calls for ids that do not exist.
func (s *LaundryService) UpdateLaundryStatus(ctx context.Context, id uint, status string, shelf *string) error {
	if id == 0 {
		return invalid("id is required")
	}
	if strings.TrimSpace(status) == "" {
		return invalid("status is required")
	}
	shelf = normalizeShelf(shelf)

	if err := s.repo.UpdateLaundryStatus(ctx, id, status, shelf); err != nil {
		return classify(err)
	}

	owner, err := s.repo.LaundryWithCustomer(ctx, id)
	if err := classify(err); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	shelfCode := shelfString(shelf)
	if status == models.StatusReady && shelfCode != "" && owner != nil {
		s.notify(ctx, id, owner.Phone, render(s.readyMessage, owner.Name, shelfCode))
	}

	s.audit.Printf("laundry item updated: id=%d, status=%s, shelf=%s", id, status, shelfCode)
	return nil
}

func (s *LaundryService) notify(ctx context.Context, id uint, phone, body string) bool {
	if err := s.notifier.Send(ctx, phone, body); err != nil {
		s.logger.Warn("notification failed",
			zap.Uint("laundry_id", id),
			zap.String("phone", phone),
			zap.Error(err),
		)
		return false
	}
	s.logger.Info("notification sent", zap.Uint("laundry_id", id), zap.String("phone", phone))
	return true
}

// ListLaundry returns every item, or only those whose status equals status
// exactly when it is non-empty.
func (s *LaundryService) ListLaundry(ctx context.Context, status string) ([]models.LaundryItem, error) {
	items, err := s.repo.ListLaundry(ctx, status)
	return items, classify(err)
}

// ListLaundryWithCustomer returns items joined with their owner's name and
// phone. Each row is also narrated at debug level.
func (s *LaundryService) ListLaundryWithCustomer(ctx context.Context) ([]models.LaundryWithCustomer, error) {
	rows, err := s.repo.ListLaundryWithCustomer(ctx)
	if err != nil {
		return nil, classify(err)
	}

	if s.logger.Core().Enabled(zap.DebugLevel) {
		for _, row := range rows {
			s.logger.Debug("laundry row", zap.Uint("laundry_id", row.ID), zap.String("summary", s.describe(row)))
		}
	}
	return rows, nil
}

func (s *LaundryService) describe(row models.LaundryWithCustomer) string {
	if row.Status == models.StatusReady && row.Shelf() != "" {
		return render(s.readyMessage, row.Name, row.Shelf())
	}
	return "Dear " + row.Name + ", your laundry is being washed..."
}

// RemindReadyPickups re-sends a reminder for every ready item that has a
// shelf code and returns how many reminders were delivered.
func (s *LaundryService) RemindReadyPickups(ctx context.Context) (int, error) {
	rows, err := s.repo.ReadyForPickup(ctx)
	if err != nil {
		return 0, classify(err)
	}

	sent := 0
	for _, row := range rows {
		if s.notify(ctx, row.ID, row.Phone, render(s.reminderMessage, row.Name, row.Shelf())) {
			sent++
		}
		s.audit.Printf("pickup reminder: id=%d, phone=%s, shelf=%s", row.ID, row.Phone, row.Shelf())
	}
	return sent, nil
}

func render(template, name, shelf string) string {
	return strings.NewReplacer(placeholderName, name, placeholderShelf, shelf).Replace(template)
}

// normalizeShelf maps an empty shelf code to NULL.
func normalizeShelf(shelf *string) *string {
	if shelf == nil || *shelf == "" {
		return nil
	}
	return shelf
}

func shelfString(shelf *string) string {
	if shelf == nil {
		return ""
	}
	return *shelf
}
