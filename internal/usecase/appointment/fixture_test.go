package appointment

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/infra/repository"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/testfixtures"
)

const testDate = "2025-03-10"

type fixture struct {
	db      *gorm.DB
	repo    domain.Repository
	opts    Options
	shop    *models.Barbershop
	haircut *models.Service
	beard   *models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testfixtures.NewDB(t)
	shop := testfixtures.Barbershop(t, db, "downtown")

	return &fixture{
		db:      db,
		repo:    repository.NewAppointmentGormRepository(db),
		opts:    OptionsFromConfig(testfixtures.Config()),
		shop:    shop,
		haircut: testfixtures.Service(t, db, shop.ID, "Haircut", 60, "50.00"),
		beard:   testfixtures.Service(t, db, shop.ID, "Beard", 30, "30.00"),
	}
}

func (f *fixture) book(t *testing.T, svc *models.Service, name, phone, clock string) (string, error) {
	t.Helper()

	conf, err := NewBook(f.repo, nil, f.opts).Execute(context.Background(), BookInput{
		BarbershopID: f.shop.ID,
		ServiceID:    svc.ID,
		ClientName:   name,
		ClientPhone:  phone,
		Date:         testDate,
		Time:         clock,
	})
	if err != nil {
		return "", err
	}
	return conf.Reference, nil
}

func (f *fixture) mustBook(t *testing.T, svc *models.Service, name, phone, clock string) string {
	t.Helper()

	ref, err := f.book(t, svc, name, phone, clock)
	if err != nil {
		t.Fatalf("booking %s at %s: %v", svc.Name, clock, err)
	}
	return ref
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()

	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func requireKind(t *testing.T, err error, want httperr.Kind) *httperr.BusinessError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	var be *httperr.BusinessError
	if !errors.As(err, &be) || be.Kind != want {
		t.Fatalf("expected %s error, got %v", want, err)
	}
	return be
}
