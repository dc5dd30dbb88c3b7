package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barberpro/internal/domain"
	appointment "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) LockBarbershop(
	ctx context.Context,
	id uint,
) error {

	var shop models.Barbershop
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&shop, id).Error
	return translate(err, nil)
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&svc).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", clientID, barbershopID).
		First(&client).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &client, nil
}

// ResolveClient inserts the client with ON CONFLICT DO NOTHING and falls
// back to the stored row, so two bookings racing on one phone never create
// two clients nor abort the surrounding transaction.
func (r *AppointmentGormRepository) ResolveClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
) (*models.Client, error) {

	db := r.db.WithContext(ctx)

	client := models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        &phone,
	}

	res := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoNothing: true,
		}).
		Create(&client)
	if res.Error != nil {
		return nil, translate(res.Error, domain.ErrPhoneTaken)
	}
	if res.RowsAffected == 1 {
		return &client, nil
	}

	var existing models.Client
	if err := db.Where("phone = ?", phone).First(&existing).Error; err != nil {
		return nil, translate(err, nil)
	}

	if existing.BarbershopID != barbershopID {
		return nil, domain.ErrPhoneTaken
	}

	if existing.Name != name {
		if err := db.Model(&existing).Update("name", name).Error; err != nil {
			return nil, translate(err, nil)
		}
	}

	return &existing, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) ListPendingForDay(
	ctx context.Context,
	barbershopID uint,
	date string,
	excludeID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"barbershop_id = ? AND date = ? AND status = ?",
			barbershopID, date, string(appointment.StatusPending),
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error
	return translate(err, domain.ErrSlotTaken)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
	return translate(err, domain.ErrSlotTaken)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		First(&ap).Error; err != nil {
		return nil, translate(err, nil)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByReference(
	ctx context.Context,
	reference string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barbershop").
		Preload("Client").
		Preload("Service").
		Where("reference = ?", reference).
		First(&ap).Error; err != nil {
		return nil, translate(err, nil)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	barbershopID uint,
	filter appointment.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("barbershop_id = ?", barbershopID)

	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	if filter.DateFrom != "" {
		q = q.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateUntil != "" {
		q = q.Where("date < ?", filter.DateUntil)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	apps := []models.Appointment{}
	if err := q.
		Order("date DESC").
		Order("start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx appointment.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// Compile-time check
var _ appointment.Repository = (*AppointmentGormRepository)(nil)
