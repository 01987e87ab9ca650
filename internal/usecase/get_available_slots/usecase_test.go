package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/scheduling-service/internal/domain"
	scheduleRepo "github.com/agendahub/scheduling-service/internal/infra/storage/schedule"
	"github.com/agendahub/scheduling-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetOverlapping(_ context.Context, _ int64, _ *int64, _, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	hours   map[domain.Weekday]*domain.WorkingHours
	special *domain.SpecialDate
}

func (f *fakeScheduleRepo) GetWorkingHours(_ context.Context, _ int64, weekday domain.Weekday) (*domain.WorkingHours, error) {
	if h, ok := f.hours[weekday]; ok {
		return h, nil
	}
	return nil, scheduleRepo.ErrWorkingHoursNotFound
}

func (f *fakeScheduleRepo) GetSpecialDate(_ context.Context, _ int64, _ time.Time) (*domain.SpecialDate, error) {
	if f.special != nil {
		return f.special, nil
	}
	return nil, scheduleRepo.ErrSpecialDateNotFound
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

type fakeTenantRepo struct {
	config *domain.TenantConfig
}

func (f *fakeTenantRepo) GetConfig(_ context.Context, _ int64) (*domain.TenantConfig, error) {
	return f.config, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(s string) types.TimeString {
	t, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsPtr(s string) *types.TimeString {
	t := ts(s)
	return &t
}

func testTenant() *domain.Tenant {
	return &domain.Tenant{ID: 1, Name: "Studio Teste", Timezone: "America/Sao_Paulo", Active: true}
}

func testConfig() *domain.TenantConfig {
	return &domain.TenantConfig{
		TenantID:               1,
		SlotGranularityMinutes: 30,
		LeadTimeMinutes:        60,
		HorizonDays:            30,
	}
}

func newTestUseCase(
	bookings *fakeBookingRepo,
	schedule *fakeScheduleRepo,
	catalog *fakeCatalogRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(bookings, schedule, catalog, &fakeTenantRepo{config: testConfig()}, nopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

func slotTimes(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time.String())
	}
	return out
}

func TestExecute_BreakExcluded(t *testing.T) {
	// Monday 09:00-18:00 with a 12:00-13:00 break, 30-minute service
	schedule := &fakeScheduleRepo{
		hours: map[domain.Weekday]*domain.WorkingHours{
			0: {Weekday: 0, OpenTime: ts("09:00"), CloseTime: ts("18:00"), BreakStart: tsPtr("12:00"), BreakEnd: tsPtr("13:00"), Active: true},
		},
	}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, DurationMinutes: 30}}
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, schedule, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Tenant:    testTenant(),
		ServiceID: 7,
		Date:      time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), // a Monday
	})
	require.NoError(t, err)
	require.Empty(t, resp.Reason)

	times := slotTimes(resp.Slots)
	assert.Contains(t, times, "09:00")
	assert.Contains(t, times, "11:30") // ends exactly at break start
	assert.Contains(t, times, "13:00") // starts exactly at break end
	assert.Contains(t, times, "17:30") // last slot that fits before closing
	assert.NotContains(t, times, "12:00")
	assert.NotContains(t, times, "12:30")
	assert.NotContains(t, times, "18:00")
}

func TestExecute_HolidayClosesDay(t *testing.T) {
	schedule := &fakeScheduleRepo{
		hours: map[domain.Weekday]*domain.WorkingHours{
			0: {Weekday: 0, OpenTime: ts("09:00"), CloseTime: ts("18:00"), Active: true},
		},
		special: &domain.SpecialDate{
			Type:        domain.SpecialDateHoliday,
			Description: "Feriado de Carnaval",
		},
	}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, DurationMinutes: 30}}
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, schedule, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Tenant:    testTenant(),
		ServiceID: 7,
		Date:      time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Equal(t, domain.ReasonClosedHoliday, resp.Reason)
	assert.Equal(t, "Feriado de Carnaval", resp.ReasonDescription)
}

func TestExecute_SpecialHoursKeepWeekdayBreak(t *testing.T) {
	schedule := &fakeScheduleRepo{
		hours: map[domain.Weekday]*domain.WorkingHours{
			0: {Weekday: 0, OpenTime: ts("09:00"), CloseTime: ts("18:00"), BreakStart: tsPtr("12:00"), BreakEnd: tsPtr("13:00"), Active: true},
		},
		special: &domain.SpecialDate{
			Type:     domain.SpecialDateSpecialHours,
			OpenTime: tsPtr("10:00"), CloseTime: tsPtr("14:00"),
		},
	}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, DurationMinutes: 30}}
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, schedule, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Tenant:    testTenant(),
		ServiceID: 7,
		Date:      time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	times := slotTimes(resp.Slots)
	assert.NotContains(t, times, "09:00") // before the special opening
	assert.Contains(t, times, "10:00")
	assert.NotContains(t, times, "12:00") // weekday break still applies
	assert.Contains(t, times, "13:30")
	assert.NotContains(t, times, "14:00")
}

func TestExecute_ConflictsExcluded(t *testing.T) {
	tenant := testTenant()
	loc := tenant.Location()
	date := time.Date(2026, 1, 12, 0, 0, 0, 0, loc)

	schedule := &fakeScheduleRepo{
		hours: map[domain.Weekday]*domain.WorkingHours{
			0: {Weekday: 0, OpenTime: ts("09:00"), CloseTime: ts("12:00"), Active: true},
		},
	}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, DurationMinutes: 60}}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			Status:  domain.StatusConfirmed,
			StartAt: time.Date(2026, 1, 12, 10, 0, 0, 0, loc),
			EndAt:   time.Date(2026, 1, 12, 11, 0, 0, 0, loc),
		},
	}}
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, loc)

	uc := newTestUseCase(bookings, schedule, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Tenant:    tenant,
		ServiceID: 7,
		Date:      date,
	})
	require.NoError(t, err)

	// 60-minute service against a 10:00-11:00 booking: 09:00 touches it
	// back-to-back (allowed), 09:30/10:00/10:30 overlap, 11:00 fits.
	assert.Equal(t, []string{"09:00", "11:00"}, slotTimes(resp.Slots))
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	tenant := testTenant()
	loc := tenant.Location()

	schedule := &fakeScheduleRepo{
		hours: map[domain.Weekday]*domain.WorkingHours{
			0: {Weekday: 0, OpenTime: ts("10:00"), CloseTime: ts("11:00"), Active: true},
		},
	}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, DurationMinutes: 60}}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			Status:  domain.StatusCancelled,
			StartAt: time.Date(2026, 1, 12, 10, 0, 0, 0, loc),
			EndAt:   time.Date(2026, 1, 12, 11, 0, 0, 0, loc),
		},
	}}
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, loc)

	uc := newTestUseCase(bookings, schedule, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Tenant:    tenant,
		ServiceID: 7,
		Date:      time.Date(2026, 1, 12, 0, 0, 0, 0, loc),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00"}, slotTimes(resp.Slots))
}

func TestExecute_SameDayLeadTime(t *testing.T) {
	tenant := testTenant()
	loc := tenant.Location()
	// Monday 10:12 local; lead time of 60 makes 11:12 the earliest raw
	// start, which rounds up to 11:30.
	now := time.Date(2026, 1, 12, 10, 12, 0, 0, loc)

	schedule := &fakeScheduleRepo{
		hours: map[domain.Weekday]*domain.WorkingHours{
			0: {Weekday: 0, OpenTime: ts("09:00"), CloseTime: ts("13:00"), Active: true},
		},
	}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, DurationMinutes: 30}}

	uc := newTestUseCase(&fakeBookingRepo{}, schedule, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Tenant:    tenant,
		ServiceID: 7,
		Date:      now,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"11:30", "12:00", "12:30"}, slotTimes(resp.Slots))
}

func TestExecute_SameDayLeadTimePastMidnight(t *testing.T) {
	tenant := testTenant()
	loc := tenant.Location()
	// Monday 23:05 local; lead time of 60 pushes the earliest start past
	// midnight, so nothing left in the day is bookable.
	now := time.Date(2026, 1, 12, 23, 5, 0, 0, loc)

	schedule := &fakeScheduleRepo{
		hours: map[domain.Weekday]*domain.WorkingHours{
			0: {Weekday: 0, OpenTime: ts("18:00"), CloseTime: ts("23:30"), Active: true},
		},
	}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, DurationMinutes: 30}}

	uc := newTestUseCase(&fakeBookingRepo{}, schedule, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Tenant:    tenant,
		ServiceID: 7,
		Date:      now,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestLeadTimeCutoff(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name    string
		now     time.Time
		lead    int
		want    string
		sameDay bool
	}{
		{name: "minute over thirty rounds to next hour", now: time.Date(2026, 1, 12, 10, 40, 0, 0, loc), lead: 60, want: "12:00", sameDay: true},
		{name: "minute within half hour rounds to half past", now: time.Date(2026, 1, 12, 10, 12, 0, 0, loc), lead: 60, want: "11:30", sameDay: true},
		{name: "exact hour stands", now: time.Date(2026, 1, 12, 10, 0, 0, 0, loc), lead: 60, want: "11:00", sameDay: true},
		{name: "exactly half past stands", now: time.Date(2026, 1, 12, 10, 30, 0, 0, loc), lead: 60, want: "11:30", sameDay: true},
		{name: "half past before midnight stands", now: time.Date(2026, 1, 12, 22, 30, 0, 0, loc), lead: 60, want: "23:30", sameDay: true},
		{name: "lead crosses midnight", now: time.Date(2026, 1, 12, 23, 5, 0, 0, loc), lead: 60, sameDay: false},
		{name: "rounding alone crosses midnight", now: time.Date(2026, 1, 12, 22, 40, 0, 0, loc), lead: 60, sameDay: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cutoff, sameDay := leadTimeCutoff(tt.now, tt.lead)
			assert.Equal(t, tt.sameDay, sameDay)
			if tt.sameDay {
				assert.Equal(t, tt.want, cutoff.String())
			}
		})
	}
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	schedule := &fakeScheduleRepo{
		hours: map[domain.Weekday]*domain.WorkingHours{
			0: {Weekday: 0, OpenTime: ts("09:00"), CloseTime: ts("18:00"), Active: true},
		},
	}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, DurationMinutes: 30}}
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, schedule, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Tenant:    testTenant(),
		ServiceID: 7,
		Date:      time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Empty(t, resp.Reason)
}

func TestExecute_DateBeyondHorizon(t *testing.T) {
	schedule := &fakeScheduleRepo{}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, DurationMinutes: 30}}
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, schedule, catalog, now)

	_, err := uc.Execute(context.Background(), &Request{
		Tenant:    testTenant(),
		ServiceID: 7,
		Date:      now.AddDate(0, 0, 31), // config horizon is 30 days
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_NoWorkingHoursMeansClosed(t *testing.T) {
	schedule := &fakeScheduleRepo{}
	catalog := &fakeCatalogRepo{service: &domain.Service{ID: 7, DurationMinutes: 30}}
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, schedule, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Tenant:    testTenant(),
		ServiceID: 7,
		Date:      time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Equal(t, domain.ReasonClosed, resp.Reason)
}
