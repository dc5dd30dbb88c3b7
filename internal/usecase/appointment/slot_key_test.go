package appointment

import (
	"context"
	"testing"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/testfixtures"
)

// blindRepo hides every pending appointment from reads, so the conflict
// validator passes and only the slot unique index can reject a write. This
// is what two concurrent bookings see when both validate before either
// commits.
type blindRepo struct {
	domain.Repository
}

func (blindRepo) ListPendingForDay(context.Context, uint, string, uint) ([]models.Appointment, error) {
	return nil, nil
}

func (r blindRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	return r.Repository.Transaction(ctx, func(tx domain.Repository) error {
		return fn(blindRepo{tx})
	})
}

func TestBook_UniqueIndexRaceBecomesSlotConflict(t *testing.T) {
	f := newFixture(t)

	ref := f.mustBook(t, f.haircut, "Ana", "11961234567", "10:00")

	_, err := NewBook(blindRepo{f.repo}, nil, f.opts).Execute(context.Background(), BookInput{
		BarbershopID: f.shop.ID,
		ServiceID:    f.haircut.ID,
		ClientName:   "Bruno",
		ClientPhone:  "11961234568",
		Date:         testDate,
		Time:         "10:00",
	})
	requireKind(t, err, httperr.KindSlotConflict)

	if n := f.count(t, &models.Appointment{}); n != 1 {
		t.Fatalf("expected 1 appointment, got %d", n)
	}
	if n := f.count(t, &models.Client{}); n != 1 {
		t.Errorf("client insert was not rolled back: %d clients", n)
	}

	first := f.appointmentByRef(t, ref)
	if first.Status != string(domain.StatusPending) || first.StartTime != "10:00" {
		t.Errorf("first booking changed: %+v", first)
	}
}

func TestCreate_UniqueIndexRaceBecomesSlotConflict(t *testing.T) {
	f := newFixture(t)
	client := testfixtures.Client(t, f.db, f.shop.ID, "Carla", "+5521998765432")

	f.mustBook(t, f.haircut, "Ana", "11961234567", "10:00")

	_, err := NewCreateAppointment(blindRepo{f.repo}, nil, f.opts).Execute(context.Background(), CreateAppointmentInput{
		BarbershopID: f.shop.ID,
		UserID:       1,
		ClientID:     client.ID,
		ServiceID:    f.beard.ID,
		Date:         testDate,
		Time:         "10:00",
	})
	requireKind(t, err, httperr.KindSlotConflict)

	if n := f.count(t, &models.Appointment{}); n != 1 {
		t.Fatalf("expected 1 appointment, got %d", n)
	}
}

func TestSlotTimesMustBeCanonical(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
	}{
		{name: "single digit hour", date: testDate, clock: "9:00"},
		{name: "seconds", date: testDate, clock: "09:00:00"},
		{name: "unpadded date", date: "2025-3-10", clock: "09:00"},
		{name: "impossible date", date: "2025-02-30", clock: "09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			client := testfixtures.Client(t, f.db, f.shop.ID, "Carla", "+5521998765432")
			ctx := context.Background()

			_, err := NewBook(f.repo, nil, f.opts).Execute(ctx, BookInput{
				BarbershopID: f.shop.ID,
				ServiceID:    f.haircut.ID,
				ClientName:   "Ana",
				ClientPhone:  "11961234567",
				Date:         tt.date,
				Time:         tt.clock,
			})
			requireKind(t, err, httperr.KindInvalidRequest)

			_, err = NewCreateAppointment(f.repo, nil, f.opts).Execute(ctx, CreateAppointmentInput{
				BarbershopID: f.shop.ID,
				ClientID:     client.ID,
				ServiceID:    f.haircut.ID,
				Date:         tt.date,
				Time:         tt.clock,
			})
			requireKind(t, err, httperr.KindInvalidRequest)

			if n := f.count(t, &models.Appointment{}); n != 0 {
				t.Fatalf("expected nothing stored, got %d appointments", n)
			}

			ap := f.appointmentByRef(t, f.mustBook(t, f.haircut, "Bruno", "11961234568", "14:00"))
			_, err = NewUpdateAppointment(f.repo, nil, f.opts).Execute(ctx, UpdateAppointmentInput{
				BarbershopID:  f.shop.ID,
				AppointmentID: ap.ID,
				Date:          ptr(tt.date),
				Time:          ptr(tt.clock),
			})
			requireKind(t, err, httperr.KindInvalidRequest)

			if reloaded := f.appointmentByRef(t, ap.Reference); reloaded.Date != testDate || reloaded.StartTime != "14:00" {
				t.Errorf("edit stored %s %s", reloaded.Date, reloaded.StartTime)
			}
		})
	}
}
