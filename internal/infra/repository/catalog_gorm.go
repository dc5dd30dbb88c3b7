package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barberpro/internal/domain"
	"github.com/BruksfildServices01/barberpro/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *CatalogGormRepository) GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&shop).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &shop, nil
}

func (r *CatalogGormRepository) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &shop, nil
}

func (r *CatalogGormRepository) CreateBarbershopWithOwner(
	ctx context.Context,
	shop *models.Barbershop,
	owner *models.User,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shop).Error; err != nil {
			return translate(err, domain.ErrSlugTaken)
		}

		owner.BarbershopID = shop.ID
		if err := tx.Omit(clause.Associations).Create(owner).Error; err != nil {
			return translate(err, domain.ErrEmailTaken)
		}
		return nil
	})
}

func (r *CatalogGormRepository) UpdateBarbershop(ctx context.Context, shop *models.Barbershop) error {
	return translate(r.db.WithContext(ctx).Save(shop).Error, domain.ErrSlugTaken)
}

// DeleteBarbershop removes the shop and everything it owns.
func (r *CatalogGormRepository) DeleteBarbershop(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []any{
			&models.Appointment{},
			&models.Client{},
			&models.Service{},
			&models.AuditLog{},
			&models.User{},
		}
		for _, m := range owned {
			if err := tx.Where("barbershop_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Barbershop{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// --------------------------------------------------
// Owner
// --------------------------------------------------

func (r *CatalogGormRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&user).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &user, nil
}

func (r *CatalogGormRepository) GetUser(ctx context.Context, barbershopID, userID uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Barbershop").
		Where("id = ? AND barbershop_id = ?", userID, barbershopID).
		First(&user).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &user, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *CatalogGormRepository) ListServicesByShop(ctx context.Context, barbershopID uint) ([]models.Service, error) {
	services := []models.Service{}
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&svc).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &svc, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(svc).Error
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(svc).Error
}

func (r *CatalogGormRepository) DeleteService(ctx context.Context, barbershopID, serviceID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.
			Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
			First(&svc).Error; err != nil {
			return translate(err, nil)
		}

		if err := tx.Model(&models.Appointment{}).
			Where("service_id = ?", svc.ID).
			Update("service_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&svc).Error
	})
}

// --------------------------------------------------
// Client
// --------------------------------------------------

// ListClientsByShop returns the shop's clients by name. A non-empty query
// matches name or phone, case-insensitively.
func (r *CatalogGormRepository) ListClientsByShop(
	ctx context.Context,
	barbershopID uint,
	query string,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).Where("barbershop_id = ?", barbershopID)

	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR phone LIKE ?)", like, like)
	}

	clients := []models.Client{}
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *CatalogGormRepository) GetClient(ctx context.Context, barbershopID, clientID uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", clientID, barbershopID).
		First(&client).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &client, nil
}

func (r *CatalogGormRepository) CreateClient(ctx context.Context, client *models.Client) error {
	return translate(
		r.db.WithContext(ctx).Omit(clause.Associations).Create(client).Error,
		domain.ErrPhoneTaken,
	)
}

func (r *CatalogGormRepository) UpdateClient(ctx context.Context, client *models.Client) error {
	return translate(
		r.db.WithContext(ctx).Omit(clause.Associations).Save(client).Error,
		domain.ErrPhoneTaken,
	)
}

// DeleteClient removes the client together with its appointments.
func (r *CatalogGormRepository) DeleteClient(ctx context.Context, barbershopID, clientID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ? AND barbershop_id = ?", clientID, barbershopID).
			Delete(&models.Appointment{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND barbershop_id = ?", clientID, barbershopID).Delete(&models.Client{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// Compile-time check
var _ catalog.Repository = (*CatalogGormRepository)(nil)
