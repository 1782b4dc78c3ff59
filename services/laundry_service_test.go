package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"laundrypro-backend/config"
	"laundrypro-backend/models"
	"laundrypro-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, to string, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

// countingRepo counts phone lookups that reach the database.
type countingRepo struct {
	Repository
	phoneLookups int
}

func (r *countingRepo) CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	r.phoneLookups++
	return r.Repository.CustomerByPhone(ctx, phone)
}

type fixture struct {
	svc       *LaundryService
	repo      *countingRepo
	notifier  *mockNotifier
	auditPath string
	logs      *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	db, err := config.ConnectDB(config.DBConfig{
		Driver: config.DriverSQLite,
		URL:    filepath.Join(dir, "laundry.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))

	auditPath := filepath.Join(dir, "logs", "laundry.log")
	audit, err := NewAuditLog(auditPath)
	require.NoError(t, err)
	t.Cleanup(func() { audit.Close() })

	core, logs := observer.New(zapcore.DebugLevel)
	repo := &countingRepo{Repository: st}
	notifier := &mockNotifier{}
	svc := NewLaundryService(repo, notifier, audit, zap.New(core), Options{PhoneCacheTTL: time.Minute})

	return &fixture{svc: svc, repo: repo, notifier: notifier, auditPath: auditPath, logs: logs}
}

func (f *fixture) auditLines(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.auditPath)
	require.NoError(t, err)
	content := strings.TrimRight(string(data), "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func (f *fixture) customer(t *testing.T, name, phone string) *models.Customer {
	t.Helper()
	c, err := f.svc.RegisterCustomer(context.Background(), name, phone)
	require.NoError(t, err)
	return c
}

func (f *fixture) item(t *testing.T, customerID uint, status string) *models.LaundryItem {
	t.Helper()
	item, err := f.svc.CreateLaundryItem(context.Background(), customerID, status, nil)
	require.NoError(t, err)
	return item
}

func strPtr(s string) *string { return &s }

func TestRegisterCustomer_DuplicatePhone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.customer(t, "Ada", "555-0001")

	_, err := f.svc.RegisterCustomer(ctx, "Grace", "555-0001")
	assert.ErrorIs(t, err, ErrDuplicatePhone)

	customers, err := f.svc.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Len(t, f.auditLines(t), 1)
}

func TestRegisterCustomer_ResolvesByPhone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ada := f.customer(t, "Ada", "555-0001")
	assert.NotZero(t, ada.ID)

	got, err := f.svc.CustomerByPhone(ctx, "555-0001")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, got.ID)
	assert.Equal(t, "Ada", got.Name)

	lines := f.auditLines(t)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Ada")
	assert.Contains(t, lines[0], "555-0001")
}

func TestRegisterCustomer_InvalidInput(t *testing.T) {
	testCases := []struct {
		name, customerName, phone string
	}{
		{"blank name", "  ", "555-0001"},
		{"blank phone", "Ada", ""},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.RegisterCustomer(context.Background(), tt.customerName, tt.phone)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.auditLines(t))
		})
	}
}

func TestCustomerByPhone_NotFoundAndCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CustomerByPhone(ctx, "555-0404")
	assert.ErrorIs(t, err, ErrNotFound)

	f.customer(t, "Ada", "555-0001")
	for i := 0; i < 3; i++ {
		c, err := f.svc.CustomerByPhone(ctx, "555-0001")
		require.NoError(t, err)
		assert.Equal(t, "Ada", c.Name)
	}
	// one miss for 555-0404, one fill for 555-0001
	assert.Equal(t, 2, f.repo.phoneLookups)
}

func TestCustomerByPhone_ExternalReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uncached := NewLaundryService(f.repo, f.notifier, f.svc.audit, zap.NewNop(), Options{})

	f.customer(t, "Ada", "555-0001")
	_, err := f.svc.CustomerByPhone(ctx, "555-0001")
	require.NoError(t, err)

	// a separate -seed process wipes the tables without touching this cache
	require.NoError(t, f.repo.Reset(ctx))

	stale, err := f.svc.CustomerByPhone(ctx, "555-0001")
	require.NoError(t, err)
	assert.Equal(t, "Ada", stale.Name)

	_, err = uncached.CustomerByPhone(ctx, "555-0001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterTimeSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	slot, err := f.svc.RegisterTimeSlot(ctx, "10:00 - 12:00")
	require.NoError(t, err)
	assert.NotZero(t, slot.ID)

	// overlapping labels are accepted
	_, err = f.svc.RegisterTimeSlot(ctx, "10:00 - 12:00")
	require.NoError(t, err)

	_, err = f.svc.RegisterTimeSlot(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	slots, err := f.svc.ListTimeSlots(ctx)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestBookAppointment_MissingReference(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")
	slot, err := f.svc.RegisterTimeSlot(ctx, "10:00 - 12:00")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.BookAppointment(ctx, 999, slot.ID), ErrReference)
	assert.ErrorIs(t, f.svc.BookAppointment(ctx, ada.ID, 999), ErrReference)

	appointments, err := f.svc.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Empty(t, appointments)

	// double booking is allowed
	require.NoError(t, f.svc.BookAppointment(ctx, ada.ID, slot.ID))
	require.NoError(t, f.svc.BookAppointment(ctx, ada.ID, slot.ID))
	appointments, err = f.svc.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, appointments, 2)
}

func TestCreateLaundryItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")

	item, err := f.svc.CreateLaundryItem(ctx, ada.ID, "", nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWashing, item.Status)
	assert.Nil(t, item.ShelfCode)

	item, err = f.svc.CreateLaundryItem(ctx, ada.ID, models.StatusReady, strPtr("C3"))
	require.NoError(t, err)
	require.NotNil(t, item.ShelfCode)
	assert.Equal(t, "C3", *item.ShelfCode)

	_, err = f.svc.CreateLaundryItem(ctx, 999, models.StatusWashing, nil)
	assert.ErrorIs(t, err, ErrReference)

	// creating an item never notifies
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLaundryStatus_ReadyWithShelfNotifiesOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")
	item := f.item(t, ada.ID, models.StatusWashing)

	f.notifier.On("Send", mock.Anything, "555-0001", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "Ada") && strings.Contains(body, "A1")
	})).Return(nil).Once()

	require.NoError(t, f.svc.UpdateLaundryStatus(ctx, item.ID, models.StatusReady, strPtr("A1")))

	f.notifier.AssertExpectations(t)
	f.notifier.AssertNumberOfCalls(t, "Send", 1)
}

func TestUpdateLaundryStatus_NoNotification(t *testing.T) {
	testCases := []struct {
		name   string
		status string
		shelf  *string
	}{
		{"ready without shelf", models.StatusReady, nil},
		{"ready with empty shelf", models.StatusReady, strPtr("")},
		{"washing with shelf", models.StatusWashing, strPtr("A1")},
		{"delivered with shelf", models.StatusDelivered, strPtr("A1")},
		{"uppercase ready", "READY", strPtr("A1")},
		{"unknown status", "folded", strPtr("A1")},
		{"padded ready", " ready ", strPtr("A1")},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ada := f.customer(t, "Ada", "555-0001")
			item := f.item(t, ada.ID, models.StatusWashing)

			require.NoError(t, f.svc.UpdateLaundryStatus(context.Background(), item.ID, tt.status, tt.shelf))

			f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateLaundryStatus_OneAuditLinePerCall(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")
	item := f.item(t, ada.ID, models.StatusWashing)
	f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	testCases := []struct {
		status   string
		shelf    *string
		wantLine string
	}{
		{models.StatusReady, strPtr("B2"), "status=ready, shelf=B2"},
		{models.StatusWashing, nil, "status=washing, shelf="},
		{models.StatusReady, nil, "status=ready, shelf="},
		{models.StatusDelivered, strPtr("B2"), "status=delivered, shelf=B2"},
	}

	linePattern := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z\] laundry item updated: id=\d+, `)
	before := len(f.auditLines(t))
	for i, tt := range testCases {
		require.NoError(t, f.svc.UpdateLaundryStatus(ctx, item.ID, tt.status, tt.shelf))

		lines := f.auditLines(t)
		require.Len(t, lines, before+i+1)
		last := lines[len(lines)-1]
		assert.Regexp(t, linePattern, last)
		assert.Contains(t, last, "id="+itoa(item.ID))
		assert.True(t, strings.HasSuffix(last, tt.wantLine), "line %q should end with %q", last, tt.wantLine)
	}
}

func TestUpdateLaundryStatus_StoresValuesAsGiven(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")
	item := f.item(t, ada.ID, models.StatusWashing)

	require.NoError(t, f.svc.UpdateLaundryStatus(ctx, item.ID, " ready ", strPtr(" A1 ")))
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)

	padded, err := f.svc.ListLaundry(ctx, " ready ")
	require.NoError(t, err)
	require.Len(t, padded, 1)
	assert.Equal(t, " ready ", padded[0].Status)
	require.NotNil(t, padded[0].ShelfCode)
	assert.Equal(t, " A1 ", *padded[0].ShelfCode)

	ready, err := f.svc.ListLaundry(ctx, models.StatusReady)
	require.NoError(t, err)
	assert.Empty(t, ready)
}

func TestUpdateLaundryStatus_WhitespaceShelfNotifies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")
	item := f.item(t, ada.ID, models.StatusWashing)
	f.notifier.On("Send", mock.Anything, "555-0001", mock.Anything).Return(nil).Once()

	require.NoError(t, f.svc.UpdateLaundryStatus(ctx, item.ID, models.StatusReady, strPtr("  ")))

	f.notifier.AssertExpectations(t)
	items, err := f.svc.ListLaundry(ctx, models.StatusReady)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].ShelfCode)
	assert.Equal(t, "  ", *items[0].ShelfCode)
}

func TestCreateLaundryItem_KeepsStatusAsGiven(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")

	padded, err := f.svc.CreateLaundryItem(ctx, ada.ID, " washing ", strPtr(""))
	require.NoError(t, err)
	assert.Equal(t, " washing ", padded.Status)
	assert.Nil(t, padded.ShelfCode)

	blank, err := f.svc.CreateLaundryItem(ctx, ada.ID, "   ", nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWashing, blank.Status)
}

func TestUpdateLaundryStatus_NotificationFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")
	item := f.item(t, ada.ID, models.StatusWashing)
	f.notifier.On("Send", mock.Anything, "555-0001", mock.Anything).Return(errors.New("carrier down")).Once()

	before := len(f.auditLines(t))
	require.NoError(t, f.svc.UpdateLaundryStatus(ctx, item.ID, models.StatusReady, strPtr("A1")))

	f.notifier.AssertExpectations(t)
	assert.Len(t, f.auditLines(t), before+1)
	assert.Equal(t, 1, f.logs.FilterMessage("notification failed").Len())

	items, err := f.svc.ListLaundry(ctx, models.StatusReady)
	require.NoError(t, err)
	assert.Len(t, items, 1, "status stays updated after a failed notification")
}

func TestUpdateLaundryStatus_MissingItem(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.UpdateLaundryStatus(context.Background(), 77, models.StatusReady, strPtr("A1")))

	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	lines := f.auditLines(t)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "id=77, status=ready, shelf=A1")
}

func TestUpdateLaundryStatus_InvalidInput(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.svc.UpdateLaundryStatus(context.Background(), 0, models.StatusReady, nil), ErrInvalidInput)
	assert.ErrorIs(t, f.svc.UpdateLaundryStatus(context.Background(), 1, " ", nil), ErrInvalidInput)
	assert.Empty(t, f.auditLines(t))
}

func TestUpdateLaundryStatus_RepeatNotifiesAgain(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")
	item := f.item(t, ada.ID, models.StatusWashing)
	f.notifier.On("Send", mock.Anything, "555-0001", mock.Anything).Return(nil)

	require.NoError(t, f.svc.UpdateLaundryStatus(ctx, item.ID, models.StatusReady, strPtr("A1")))
	require.NoError(t, f.svc.UpdateLaundryStatus(ctx, item.ID, models.StatusReady, strPtr("A1")))

	f.notifier.AssertNumberOfCalls(t, "Send", 2)
}

func TestListLaundry_StatusFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")
	f.item(t, ada.ID, models.StatusWashing)
	f.item(t, ada.ID, models.StatusWashing)
	f.item(t, ada.ID, models.StatusDelivered)
	f.item(t, ada.ID, "WASHING")

	washing, err := f.svc.ListLaundry(ctx, models.StatusWashing)
	require.NoError(t, err)
	assert.Len(t, washing, 2)
	for _, item := range washing {
		assert.Equal(t, models.StatusWashing, item.Status)
	}

	unknown, err := f.svc.ListLaundry(ctx, "spinning")
	require.NoError(t, err)
	assert.Empty(t, unknown)

	all, err := f.svc.ListLaundry(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestListLaundryWithCustomer_NarratesAtDebug(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")
	f.item(t, ada.ID, models.StatusWashing)
	_, err := f.svc.CreateLaundryItem(ctx, ada.ID, models.StatusReady, strPtr("D4"))
	require.NoError(t, err)

	rows, err := f.svc.ListLaundryWithCustomer(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	narration := f.logs.FilterMessage("laundry row").All()
	require.Len(t, narration, 2)
	for _, entry := range narration {
		assert.Equal(t, zapcore.DebugLevel, entry.Level)
	}
	assert.Contains(t, narration[1].ContextMap()["summary"], "D4")
}

func TestEndToEnd_ReadyNotification(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ada, err := f.svc.RegisterCustomer(ctx, "Ada", "555-0001")
	require.NoError(t, err)
	item, err := f.svc.CreateLaundryItem(ctx, ada.ID, models.StatusWashing, nil)
	require.NoError(t, err)

	f.notifier.On("Send", mock.Anything, "555-0001", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "Ada") && strings.Contains(body, "B2")
	})).Return(nil).Once()

	require.NoError(t, f.svc.UpdateLaundryStatus(ctx, item.ID, models.StatusReady, strPtr("B2")))
	f.notifier.AssertExpectations(t)

	rows, err := f.svc.ListLaundryWithCustomer(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StatusReady, rows[0].Status)
	assert.Equal(t, "B2", rows[0].Shelf())
	assert.Equal(t, "Ada", rows[0].Name)
	assert.Equal(t, "555-0001", rows[0].Phone)
}

func TestRemindReadyPickups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.customer(t, "Ada", "555-0001")
	grace := f.customer(t, "Grace", "555-0002")
	_, err := f.svc.CreateLaundryItem(ctx, ada.ID, models.StatusReady, strPtr("A1"))
	require.NoError(t, err)
	_, err = f.svc.CreateLaundryItem(ctx, grace.ID, models.StatusReady, strPtr("A2"))
	require.NoError(t, err)
	f.item(t, grace.ID, models.StatusWashing)

	f.notifier.On("Send", mock.Anything, "555-0001", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "A1")
	})).Return(nil).Once()
	f.notifier.On("Send", mock.Anything, "555-0002", mock.Anything).Return(errors.New("unreachable")).Once()

	before := len(f.auditLines(t))
	sent, err := f.svc.RemindReadyPickups(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	f.notifier.AssertExpectations(t)
	assert.Len(t, f.auditLines(t), before+2)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.customer(t, "Ada", "555-0001")
	_, err := f.svc.CustomerByPhone(ctx, "555-0001")
	require.NoError(t, err)

	require.NoError(t, f.svc.Seed(ctx))

	customers, err := f.svc.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	_, err = f.svc.CustomerByPhone(ctx, "555-0001")
	assert.ErrorIs(t, err, ErrNotFound, "seed must flush cached lookups")

	ready, err := f.svc.ListLaundry(ctx, models.StatusReady)
	require.NoError(t, err)
	assert.Len(t, ready, 1)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
