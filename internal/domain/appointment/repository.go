package appointment

import (
	"context"

	"github.com/BruksfildServices01/barberpro/internal/models"
)

// ListFilter narrows owner listings. Empty fields do not filter.
type ListFilter struct {
	Date      string
	DateFrom  string
	DateUntil string
	Status    string
}

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	// LockBarbershop takes a row lock on the shop for the rest of the
	// transaction, serializing writers of that shop's schedule.
	LockBarbershop(
		ctx context.Context,
		id uint,
	) error

	// -------- Service --------
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		barbershopID uint,
		clientID uint,
	) (*models.Client, error)

	// ResolveClient returns the client owning phone, creating it when
	// absent and renaming it when name differs.
	ResolveClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
	) (*models.Client, error)

	// -------- Appointment --------
	ListPendingForDay(
		ctx context.Context,
		barbershopID uint,
		date string,
		excludeID uint,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		barbershopID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByReference(
		ctx context.Context,
		reference string,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		barbershopID uint,
		filter ListFilter,
	) ([]models.Appointment, error)

	// Transaction runs fn with a repository bound to a single transaction.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
