package process_intent

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/internal/infra/storage/botlog"
	catalogRepo "github.com/agendahub/scheduling-service/internal/infra/storage/catalog"
	bookingsService "github.com/agendahub/scheduling-service/internal/service/bookings"
	bookingModels "github.com/agendahub/scheduling-service/internal/service/bookings/models"
	createBooking "github.com/agendahub/scheduling-service/internal/usecase/create_booking"
	availability "github.com/agendahub/scheduling-service/internal/usecase/get_available_slots"
	"github.com/agendahub/scheduling-service/pkg/types"
)

type fakeCatalog struct {
	services      []*domain.Service
	professionals []*domain.Professional
}

func (f *fakeCatalog) FindServiceByName(_ context.Context, _ int64, name string) (*domain.Service, error) {
	for _, s := range f.services {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(name)) {
			return s, nil
		}
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalog) ListActiveServices(_ context.Context, _ int64) ([]*domain.Service, error) {
	return f.services, nil
}

func (f *fakeCatalog) FindProfessionalByName(_ context.Context, _ int64, name string) (*domain.Professional, error) {
	for _, p := range f.professionals {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			return p, nil
		}
	}
	return nil, catalogRepo.ErrProfessionalNotFound
}

func (f *fakeCatalog) FirstActiveProfessional(_ context.Context, _ int64) (*domain.Professional, error) {
	if len(f.professionals) == 0 {
		return nil, catalogRepo.ErrProfessionalNotFound
	}
	return f.professionals[0], nil
}

type fakeLifecycle struct {
	booking    *domain.Booking
	lookupErr  error
	cancelErr  error
	confirmErr error

	cancelReq *bookingModels.CancelBookingRequest
}

func (f *fakeLifecycle) GetActiveByCode(_ context.Context, _ int64, _ string) (*domain.Booking, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.booking, nil
}

func (f *fakeLifecycle) Cancel(_ context.Context, _ int64, _ int64, req *bookingModels.CancelBookingRequest) (*bookingModels.BookingResponse, error) {
	f.cancelReq = req
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &bookingModels.BookingResponse{ID: f.booking.ID, Status: string(domain.StatusCancelled)}, nil
}

func (f *fakeLifecycle) Confirm(_ context.Context, _ int64, _ int64) (*bookingModels.BookingResponse, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return &bookingModels.BookingResponse{ID: f.booking.ID, Status: string(domain.StatusConfirmed)}, nil
}

type fakeDetector struct {
	response *createBooking.Response
	err      error
	request  *createBooking.Request
}

func (f *fakeDetector) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.request = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type fakeAvailability struct {
	response *availability.Response
}

func (f *fakeAvailability) Execute(_ context.Context, _ *availability.Request) (*availability.Response, error) {
	return f.response, nil
}

type fakeAuditLog struct {
	entries []botlog.Entry
}

func (f *fakeAuditLog) Insert(_ context.Context, entry botlog.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testTenant() *domain.Tenant {
	return &domain.Tenant{ID: 1, Name: "Studio Teste", Timezone: "America/Sao_Paulo", Active: true}
}

type routerFixture struct {
	catalog   *fakeCatalog
	lifecycle *fakeLifecycle
	detector  *fakeDetector
	avail     *fakeAvailability
	audit     *fakeAuditLog
	uc        *UseCase
}

func newRouter() *routerFixture {
	f := &routerFixture{
		catalog: &fakeCatalog{
			services:      []*domain.Service{{ID: 7, Name: "Corte Feminino", DurationMinutes: 60}},
			professionals: []*domain.Professional{{ID: 2, Name: "Ana"}},
		},
		lifecycle: &fakeLifecycle{},
		detector:  &fakeDetector{},
		avail:     &fakeAvailability{response: &availability.Response{}},
		audit:     &fakeAuditLog{},
	}
	f.uc = NewUseCase(f.catalog, f.lifecycle, f.detector, f.avail, f.audit, nopLogger{})
	return f
}

func TestExecute_ScheduleIntent(t *testing.T) {
	f := newRouter()
	tenant := testTenant()
	loc := tenant.Location()

	f.detector.response = &createBooking.Response{
		ID:      42,
		Code:    "AB12CD",
		StartAt: time.Date(2026, 1, 15, 14, 0, 0, 0, loc),
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		Tenant:    tenant,
		RequestID: "req-1",
		Phone:     "+55 11 99999-8888",
		Intent:    IntentSchedule,
		Schedule: &ScheduleIntent{
			Service: "corte",
			Date:    "2026-01-15",
			Time:    "14:00",
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "AB12CD")
	assert.Contains(t, resp.Message, "15/01/2026")
	require.NotNil(t, resp.BookingID)
	assert.Equal(t, int64(42), *resp.BookingID)

	// The detector receives the normalized phone and the default professional
	require.NotNil(t, f.detector.request)
	assert.Equal(t, "11999998888", f.detector.request.ClientPhone)
	require.NotNil(t, f.detector.request.ProfessionalID)
	assert.Equal(t, int64(2), *f.detector.request.ProfessionalID)
	assert.Equal(t, time.Date(2026, 1, 15, 14, 0, 0, 0, loc), f.detector.request.StartAt)

	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, botlog.StatusSuccess, entry.Status)
	assert.Equal(t, IntentSchedule, entry.Intent)
	assert.Equal(t, "11999998888", entry.Phone)
	require.NotNil(t, entry.BookingID)
	assert.Equal(t, int64(42), *entry.BookingID)
}

func TestExecute_ScheduleConflictListsAlternatives(t *testing.T) {
	f := newRouter()
	tenant := testTenant()
	loc := tenant.Location()

	f.detector.err = &createBooking.ConflictError{Alternatives: []time.Time{
		time.Date(2026, 1, 15, 15, 0, 0, 0, loc),
		time.Date(2026, 1, 15, 16, 30, 0, 0, loc),
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{
		Tenant: tenant,
		Phone:  "11999998888",
		Intent: IntentSchedule,
		Schedule: &ScheduleIntent{
			Service: "corte",
			Date:    "2026-01-15",
			Time:    "14:00",
		},
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, kindConflict, resp.ErrorKind)
	assert.Contains(t, resp.Message, "15:00")
	assert.Contains(t, resp.Message, "16:30")

	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, botlog.StatusError, entry.Status)
	require.NotNil(t, entry.ErrorDetails)
	assert.Equal(t, kindConflict, *entry.ErrorDetails)
}

func TestExecute_ScheduleUnknownServiceListsCatalog(t *testing.T) {
	f := newRouter()

	resp, err := f.uc.Execute(context.Background(), &Request{
		Tenant: testTenant(),
		Phone:  "11999998888",
		Intent: IntentSchedule,
		Schedule: &ScheduleIntent{
			Service: "massagem",
			Date:    "2026-01-15",
			Time:    "14:00",
		},
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, kindNotFound, resp.ErrorKind)
	assert.Contains(t, resp.Message, "Corte Feminino")
}

func TestExecute_CancelOwnershipEnforced(t *testing.T) {
	f := newRouter()
	f.lifecycle.booking = &domain.Booking{ID: 42, Code: "AB12CD", Status: domain.StatusConfirmed, ClientPhone: "11999998888"}
	f.lifecycle.cancelErr = bookingsService.ErrAccessDenied

	resp, err := f.uc.Execute(context.Background(), &Request{
		Tenant: testTenant(),
		Phone:  "11888887777",
		Intent: IntentCancel,
		Cancel: &CancelIntent{Code: "AB12CD"},
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, kindAuthorization, resp.ErrorKind)
}

func TestExecute_CancelFormatsCode(t *testing.T) {
	f := newRouter()
	f.lifecycle.booking = &domain.Booking{ID: 42, Code: "AB12CD", Status: domain.StatusConfirmed, ClientPhone: "11999998888"}

	resp, err := f.uc.Execute(context.Background(), &Request{
		Tenant: testTenant(),
		Phone:  "+55 11 99999-8888",
		Intent: IntentCancel,
		Cancel: &CancelIntent{Code: "  ab12cd  "},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "AB12CD")

	// The raw phone travels to the lifecycle for ownership matching
	require.NotNil(t, f.lifecycle.cancelReq)
	require.NotNil(t, f.lifecycle.cancelReq.Phone)
	assert.Equal(t, "+55 11 99999-8888", *f.lifecycle.cancelReq.Phone)
}

func TestExecute_CancelUnknownCode(t *testing.T) {
	f := newRouter()
	f.lifecycle.lookupErr = bookingsService.ErrBookingNotFound

	resp, err := f.uc.Execute(context.Background(), &Request{
		Tenant: testTenant(),
		Phone:  "11999998888",
		Intent: IntentCancel,
		Cancel: &CancelIntent{Code: "ZZZZZZ"},
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, kindNotFound, resp.ErrorKind)
	assert.Contains(t, resp.Message, "ZZZZZZ")
}

func TestExecute_ConfirmIntent(t *testing.T) {
	f := newRouter()
	f.lifecycle.booking = &domain.Booking{ID: 42, Code: "AB12CD", Status: domain.StatusPending}

	resp, err := f.uc.Execute(context.Background(), &Request{
		Tenant:  testTenant(),
		Phone:   "11999998888",
		Intent:  IntentConfirm,
		Confirm: &ConfirmIntent{Code: "AB12CD"},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "AB12CD")
}

func TestExecute_ConfirmAlreadyConfirmed(t *testing.T) {
	f := newRouter()
	f.lifecycle.booking = &domain.Booking{ID: 42, Code: "AB12CD", Status: domain.StatusConfirmed}

	resp, err := f.uc.Execute(context.Background(), &Request{
		Tenant:  testTenant(),
		Phone:   "11999998888",
		Intent:  IntentConfirm,
		Confirm: &ConfirmIntent{Code: "AB12CD"},
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, kindNotFound, resp.ErrorKind)
}

func TestExecute_QueryIntentListsSlots(t *testing.T) {
	f := newRouter()
	f.avail.response = &availability.Response{
		Slots: []availability.Slot{
			{Time: types.TimeString("09:00")},
			{Time: types.TimeString("09:30")},
		},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		Tenant: testTenant(),
		Phone:  "11999998888",
		Intent: IntentQuery,
		Query:  &QueryIntent{Service: "corte", Date: "2026-01-15"},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"09:00", "09:30"}, resp.Slots)
	assert.Contains(t, resp.Message, "09:00, 09:30")
}

func TestExecute_QueryHolidayDescriptionVerbatim(t *testing.T) {
	f := newRouter()
	f.avail.response = &availability.Response{
		Reason:            domain.ReasonClosedHoliday,
		ReasonDescription: "Fechado para reforma",
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		Tenant: testTenant(),
		Phone:  "11999998888",
		Intent: IntentQuery,
		Query:  &QueryIntent{Service: "corte", Date: "2026-01-15"},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Fechado para reforma", resp.Message)
	assert.Empty(t, resp.Slots)
}

func TestExecute_UnknownIntent(t *testing.T) {
	f := newRouter()

	resp, err := f.uc.Execute(context.Background(), &Request{
		Tenant: testTenant(),
		Phone:  "11999998888",
		Intent: "reschedule",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, kindValidation, resp.ErrorKind)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, botlog.StatusError, f.audit.entries[0].Status)
}

func TestExecute_MissingTenant(t *testing.T) {
	f := newRouter()

	_, err := f.uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.audit.entries)
}
