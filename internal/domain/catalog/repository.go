package catalog

import (
	"context"

	"github.com/BruksfildServices01/barberpro/internal/models"
)

// Repository covers everything owned by a shop that is not the schedule:
// the shop itself, its owners, services and clients.
type Repository interface {
	// -------- Barbershop --------
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	CreateBarbershopWithOwner(ctx context.Context, shop *models.Barbershop, owner *models.User) error
	UpdateBarbershop(ctx context.Context, shop *models.Barbershop) error
	DeleteBarbershop(ctx context.Context, id uint) error

	// -------- Owner --------
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, barbershopID, userID uint) (*models.User, error)

	// -------- Service --------
	ListServicesByShop(ctx context.Context, barbershopID uint) ([]models.Service, error)
	GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	UpdateService(ctx context.Context, svc *models.Service) error
	// DeleteService removes the service and detaches it from appointments,
	// which keep their captured price.
	DeleteService(ctx context.Context, barbershopID, serviceID uint) error

	// -------- Client --------
	ListClientsByShop(ctx context.Context, barbershopID uint, query string) ([]models.Client, error)
	GetClient(ctx context.Context, barbershopID, clientID uint) (*models.Client, error)
	CreateClient(ctx context.Context, client *models.Client) error
	UpdateClient(ctx context.Context, client *models.Client) error
	DeleteClient(ctx context.Context, barbershopID, clientID uint) error
}
