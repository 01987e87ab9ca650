package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/scheduling-service/internal/domain"
	bookingRepo "github.com/agendahub/scheduling-service/internal/infra/storage/booking"
	availability "github.com/agendahub/scheduling-service/internal/usecase/get_available_slots"
	"github.com/agendahub/scheduling-service/pkg/types"
)

type fakeBookingRepo struct {
	lockResults []lockResult
	lockCalls   int

	createErrs  []error
	createCalls int
	created     *domain.Booking
}

type lockResult struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) LockOverlapping(_ context.Context, _ int64, _ *int64, _, _ time.Time) ([]*domain.Booking, error) {
	idx := f.lockCalls
	f.lockCalls++
	if idx < len(f.lockResults) {
		return f.lockResults[idx].bookings, f.lockResults[idx].err
	}
	return nil, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	idx := f.createCalls
	f.createCalls++
	if idx < len(f.createErrs) && f.createErrs[idx] != nil {
		return nil, f.createErrs[idx]
	}
	created := *b
	created.ID = 42
	f.created = &created
	return &created, nil
}

type fakeClientRepo struct {
	client   *domain.Client
	getErr   error
	received *domain.Client
}

func (f *fakeClientRepo) GetByID(_ context.Context, _ int64, _ int64) (*domain.Client, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.client, nil
}

func (f *fakeClientRepo) GetOrCreate(_ context.Context, c *domain.Client) (*domain.Client, error) {
	f.received = c
	return f.client, nil
}

type fakeCatalogRepo struct {
	service      *domain.Service
	professional *domain.Professional
}

func (f *fakeCatalogRepo) GetServiceByID(_ context.Context, _ int64, _ int64) (*domain.Service, error) {
	return f.service, nil
}

func (f *fakeCatalogRepo) GetProfessionalByID(_ context.Context, _ int64, _ int64) (*domain.Professional, error) {
	return f.professional, nil
}

type fakeAvailability struct {
	slots []availability.Slot
}

func (f *fakeAvailability) Execute(_ context.Context, _ *availability.Request) (*availability.Response, error) {
	return &availability.Response{Slots: f.slots}, nil
}

// fakeTxManager runs the body directly; it is the storage layer's job to
// translate SQLSTATE codes, so faking those at the repo boundary suffices.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testTenant() *domain.Tenant {
	return &domain.Tenant{ID: 1, Name: "Studio Teste", Timezone: "America/Sao_Paulo", Active: true}
}

func newDetector(
	bookings *fakeBookingRepo,
	clients *fakeClientRepo,
	catalog *fakeCatalogRepo,
	avail *fakeAvailability,
	tx *fakeTxManager,
	now time.Time,
) *UseCase {
	uc := NewUseCase(bookings, clients, catalog, avail, tx, nopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

func baseRequest(start time.Time) *Request {
	return &Request{
		Tenant:      testTenant(),
		ClientPhone: "11999998888",
		ServiceID:   7,
		StartAt:     start,
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)

	bookings := &fakeBookingRepo{}
	clients := &fakeClientRepo{client: &domain.Client{ID: 3, Name: "Maria", Phone: "11999998888"}}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, Name: "Corte", DurationMinutes: 60}}
	tx := &fakeTxManager{}

	uc := newDetector(bookings, clients, catalog, &fakeAvailability{}, tx, now)

	resp, err := uc.Execute(context.Background(), baseRequest(start))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Len(t, resp.Code, 6)
	assert.Equal(t, resp.StartAt.Add(60*time.Minute), resp.EndAt)
	assert.Equal(t, "Corte", resp.ServiceName)

	require.NotNil(t, bookings.created.Notes)
	assert.Contains(t, *bookings.created.Notes, "Código: "+resp.Code)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_OccupiedSlotReturnsConflictWithAlternatives(t *testing.T) {
	tenant := testTenant()
	loc := tenant.Location()
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, loc)
	start := time.Date(2026, 1, 13, 10, 0, 0, 0, loc)

	occupied := &domain.Booking{
		Status:  domain.StatusConfirmed,
		StartAt: start,
		EndAt:   start.Add(time.Hour),
	}
	bookings := &fakeBookingRepo{lockResults: []lockResult{{bookings: []*domain.Booking{occupied}}}}
	clients := &fakeClientRepo{client: &domain.Client{ID: 3, Name: "Maria", Phone: "11999998888"}}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, Name: "Corte", DurationMinutes: 60}}

	slotAt := func(h, m int) availability.Slot {
		at := time.Date(2026, 1, 13, h, m, 0, 0, loc)
		return availability.Slot{Time: types.NewTimeString(at), StartAt: at}
	}
	avail := &fakeAvailability{slots: []availability.Slot{
		slotAt(9, 0), slotAt(11, 0), slotAt(11, 30), slotAt(12, 0), slotAt(14, 0),
	}}

	uc := newDetector(bookings, clients, catalog, avail, &fakeTxManager{}, now)

	_, err := uc.Execute(context.Background(), baseRequest(start))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	// Later slots first, capped at three
	want := []time.Time{
		time.Date(2026, 1, 13, 11, 0, 0, 0, loc),
		time.Date(2026, 1, 13, 11, 30, 0, 0, loc),
		time.Date(2026, 1, 13, 12, 0, 0, 0, loc),
	}
	assert.Equal(t, want, conflict.Alternatives)
}

func TestExecute_DuplicateCodeRerollsWholeTransaction(t *testing.T) {
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)

	// First insert hits the unique code constraint; the second run of the
	// transaction locks again and succeeds with a fresh code.
	bookings := &fakeBookingRepo{createErrs: []error{bookingRepo.ErrDuplicateCode}}
	clients := &fakeClientRepo{client: &domain.Client{ID: 3, Name: "Maria", Phone: "11999998888"}}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, Name: "Corte", DurationMinutes: 30}}
	tx := &fakeTxManager{}

	uc := newDetector(bookings, clients, catalog, &fakeAvailability{}, tx, now)

	resp, err := uc.Execute(context.Background(), baseRequest(start))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 2, tx.calls)
	assert.Equal(t, 2, bookings.lockCalls)
}

func TestExecute_TransientLockErrorRetriesOnce(t *testing.T) {
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)

	bookings := &fakeBookingRepo{lockResults: []lockResult{
		{err: bookingRepo.ErrLockNotAvailable},
	}}
	clients := &fakeClientRepo{client: &domain.Client{ID: 3, Name: "Maria", Phone: "11999998888"}}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, Name: "Corte", DurationMinutes: 30}}
	tx := &fakeTxManager{}

	uc := newDetector(bookings, clients, catalog, &fakeAvailability{}, tx, now)

	resp, err := uc.Execute(context.Background(), baseRequest(start))
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 2, tx.calls)
}

func TestExecute_PersistentLockErrorBecomesConflict(t *testing.T) {
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)

	bookings := &fakeBookingRepo{lockResults: []lockResult{
		{err: bookingRepo.ErrLockNotAvailable},
		{err: bookingRepo.ErrLockNotAvailable},
	}}
	clients := &fakeClientRepo{client: &domain.Client{ID: 3, Name: "Maria", Phone: "11999998888"}}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, Name: "Corte", DurationMinutes: 30}}
	tx := &fakeTxManager{}

	uc := newDetector(bookings, clients, catalog, &fakeAvailability{}, tx, now)

	_, err := uc.Execute(context.Background(), baseRequest(start))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 2, tx.calls)
}

func TestExecute_PastStartRejected(t *testing.T) {
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)

	uc := newDetector(&fakeBookingRepo{}, &fakeClientRepo{}, &fakeCatalogRepo{}, &fakeAvailability{}, &fakeTxManager{}, now)

	_, err := uc.Execute(context.Background(), baseRequest(now.Add(-time.Hour)))
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestExecute_UnknownClientID(t *testing.T) {
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)

	clients := &fakeClientRepo{getErr: errors.New("client.repository: client not found")}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, Name: "Corte", DurationMinutes: 30}}

	uc := newDetector(&fakeBookingRepo{}, clients, catalog, &fakeAvailability{}, &fakeTxManager{}, now)

	clientID := int64(99)
	req := baseRequest(start)
	req.ClientID = &clientID

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestExecute_GetOrCreateUsesNormalizedDefaults(t *testing.T) {
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)

	clients := &fakeClientRepo{client: &domain.Client{ID: 3, Name: "11999998888", Phone: "11999998888"}}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, Name: "Corte", DurationMinutes: 30}}

	uc := newDetector(&fakeBookingRepo{}, clients, catalog, &fakeAvailability{}, &fakeTxManager{}, now)

	_, err := uc.Execute(context.Background(), baseRequest(start))
	require.NoError(t, err)

	require.NotNil(t, clients.received)
	assert.Equal(t, "11999998888", clients.received.Name) // falls back to the phone
	assert.Equal(t, domain.OriginWhatsApp, clients.received.Origin)
	assert.True(t, clients.received.Active)
}
